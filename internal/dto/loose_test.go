package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedResume_LooseFields(t *testing.T) {
	tests := map[string]struct {
		reply string
		check func(t *testing.T, p ParsedResume)
	}{
		"numeric phone": {
			reply: `{"phone":4155551234}`,
			check: func(t *testing.T, p ParsedResume) { assert.Equal(t, LooseString("4155551234"), p.Phone) },
		},
		"string years": {
			reply: `{"yearsOfExperience":"5"}`,
			check: func(t *testing.T, p ParsedResume) { assert.Equal(t, LooseNumber(5), p.YearsOfExperience) },
		},
		"unparseable years": {
			reply: `{"yearsOfExperience":"five"}`,
			check: func(t *testing.T, p ParsedResume) { assert.Zero(t, p.YearsOfExperience) },
		},
		"object skills": {
			reply: `{"skills":[{"name":"Go"},"SQL",3,{"level":"senior"}]}`,
			check: func(t *testing.T, p ParsedResume) { assert.Equal(t, LooseStrings{"Go", "SQL", "3"}, p.Skills) },
		},
		"skills not a list": {
			reply: `{"skills":"Go, SQL"}`,
			check: func(t *testing.T, p ParsedResume) { assert.Empty(t, p.Skills) },
		},
		"null fields": {
			reply: `{"name":null,"phone":null,"yearsOfExperience":null,"skills":null}`,
			check: func(t *testing.T, p ParsedResume) {
				assert.Empty(t, p.Name)
				assert.Empty(t, p.Phone)
				assert.Zero(t, p.YearsOfExperience)
				assert.Empty(t, p.Skills)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var p ParsedResume
			require.NoError(t, json.Unmarshal([]byte(tt.reply), &p))
			tt.check(t, p)
		})
	}
}

func TestSourcedProfile_LooseFields(t *testing.T) {
	var p SourcedProfile
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ada","fit_score":"85","years_of_experience":"7.5","skills":[{"name":"Go"}]}`), &p))
	assert.Equal(t, LooseString("Ada"), p.Name)
	assert.Equal(t, LooseNumber(85), p.FitScore)
	assert.Equal(t, LooseNumber(7.5), p.YearsOfExperience)
	assert.Equal(t, LooseStrings{"Go"}, p.Skills)
}

func TestLooseString_RejectsMalformedJSON(t *testing.T) {
	var p ParsedResume
	assert.Error(t, json.Unmarshal([]byte(`{"phone":}`), &p))
}
