package service

import (
	"fmt"
	"strings"

	"github.com/octobees/hireloop/api/internal/entity"
)

const (
	jobParserSystem = "You read job postings and extract them into JSON with the keys title, department, location, " +
		"type (Full-time, Part-time or Contract), description, requirements (array of strings) and responsibilities (array of strings)."
	jobInsightsSystem  = "You are a senior hiring manager. Give practical, specific hiring advice for a job posting as a JSON object."
	resumeParserSystem = "You read resumes and extract them into JSON with the keys name, email, phone, location, role (current title), " +
		"summary, skills (array of strings), experience, education and yearsOfExperience (number)."
	analysisSystem = "You assess candidates against a job and answer with a JSON object. Be concrete and fair."
	fitSystem      = "You score how well a candidate fits a job and answer with a JSON object."
	sourcingSystem = "You write realistic but fictional candidate profiles for recruiting demos and answer with a JSON object."
	emailSystem    = "You are a recruiter writing short, personal outreach emails. Answer with a JSON object."
	prepSystem     = "You design structured interview questions and answer with a JSON object."
)

func jobParserPrompt(text string) string {
	return "Job posting:\n\n" + text
}

func jobInsightsPrompt(job *entity.Job) string {
	var b strings.Builder
	writeJob(&b, job)
	b.WriteString(`
Return JSON with:
- mustHaveSkills: 5 to 7 essential skills
- niceToHaveSkills: 3 to 5 bonus skills
- dealBreakers: 3 or 4 non-negotiable requirements
- hiringGuide: a guide for the hiring manager in a few paragraphs
- keyCompetencies: 4 to 6 competencies to assess
- interviewFocus: 3 or 4 areas to explore in interviews`)
	return b.String()
}

func resumeParserPrompt(text string) string {
	return "Resume:\n\n" + text
}

func analysisPrompt(c *entity.Candidate, job *entity.Job) string {
	var b strings.Builder
	if job != nil {
		writeJob(&b, job)
		fmt.Fprintf(&b, "Deal breakers: location must be %s, type must be %s", job.Location, job.Type)
		if job.DealBreakers.NoSponsorship {
			b.WriteString(", no visa sponsorship")
		}
		if job.DealBreakers.OnsiteRequired {
			b.WriteString(", on-site attendance required")
		}
		b.WriteString("\n\n")
	}
	writeCandidate(&b, c)
	b.WriteString(`
Return JSON with:
- summary: two or three sentences
- strengths: 3 or 4 strengths relevant to the job
- gaps: 2 or 3 gaps against the requirements
- fitScore: {overall, skills, experience, education}, each 0-100
- dealBreakerCheck: {passed (boolean), details (array of strings)}
- recommendation: two or three sentences`)
	return b.String()
}

func fitPrompt(c *entity.Candidate, job *entity.Job) string {
	var b strings.Builder
	writeJob(&b, job)
	writeCandidate(&b, c)
	b.WriteString(`
Return JSON with:
- overall: 0-100
- breakdown: {skills, experience, education}, each 0-100
- reasoning: one paragraph
- strengths: array of strings
- concerns: array of strings`)
	return b.String()
}

func sourcingPrompt(job *entity.Job, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d candidate profiles for this job.\n\n", count)
	writeJob(&b, job)
	b.WriteString(`
Return JSON {"candidates": [...]} where each candidate has name, email (fictional), role (current title), location,
years_of_experience (number), skills (array of strings), experience (array of {company, title, duration, description}),
education ({degree, institution, year}), fit_score (0-100) and summary.`)
	return b.String()
}

func emailPrompt(c *entity.Candidate, job *entity.Job, kind, company string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s outreach email from %s.\n\n", kind, company)
	fmt.Fprintf(&b, "Candidate: %s\nCurrent role: %s\nSkills: %s\n\n", c.Name, c.Role, strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "Job: %s\nDescription: %s\n\n", job.Title, job.Description)
	b.WriteString(`Keep it warm and specific to the candidate. Return JSON with "subject" and "body".`)
	return b.String()
}

func prepPrompt(c *entity.Candidate, job *entity.Job, count int, kind string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d %s interview questions.\n\n", count, kind)
	if job != nil {
		writeJob(&b, job)
	}
	writeCandidate(&b, c)
	b.WriteString(`
Return JSON {"questions": [...]} where each item has question, criterion (the competency it assesses)
and listen_for (what a strong answer contains).`)
	return b.String()
}

func writeJob(b *strings.Builder, job *entity.Job) {
	fmt.Fprintf(b, "Job title: %s\nDepartment: %s\nLocation: %s\nType: %s\nDescription: %s\n",
		job.Title, job.Department, job.Location, job.Type, job.Description)
	if len(job.Requirements) > 0 {
		fmt.Fprintf(b, "Requirements: %s\n", strings.Join(job.Requirements, "; "))
	}
	if len(job.Responsibilities) > 0 {
		fmt.Fprintf(b, "Responsibilities: %s\n", strings.Join(job.Responsibilities, "; "))
	}
	b.WriteString("\n")
}

func writeCandidate(b *strings.Builder, c *entity.Candidate) {
	fmt.Fprintf(b, "Candidate: %s\nRole: %s\n", c.Name, c.Role)
	if c.YearsOfExperience != nil {
		fmt.Fprintf(b, "Years of experience: %d\n", *c.YearsOfExperience)
	}
	if c.Location != nil {
		fmt.Fprintf(b, "Location: %s\n", *c.Location)
	}
	fmt.Fprintf(b, "Skills: %s\n", strings.Join(c.Skills, ", "))
	if c.Experience != nil {
		fmt.Fprintf(b, "Experience: %v\n", c.Experience)
	}
	if c.Education != nil {
		fmt.Fprintf(b, "Education: %v\n", c.Education)
	}
}
