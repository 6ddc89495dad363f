package passwd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		strict     bool
		wantErr    bool
		wantReason string
	}{
		{name: "too short", password: "a1b2c3", wantErr: true, wantReason: reasonWeak},
		{name: "too short even with special chars", password: "a1!b2@", wantErr: true, wantReason: reasonWeak},
		{name: "no letters", password: "12345678", wantErr: true, wantReason: reasonWeak},
		{name: "no digits", password: "abcdefgh", wantErr: true, wantReason: reasonWeak},
		{name: "letters and digits ok", password: "passw0rd"},
		{name: "strict rejects without special", password: "passw0rd", strict: true, wantErr: true, wantReason: reasonNoSpecial},
		{name: "strict accepts with special", password: "passw0rd!", strict: true},
		{name: "non-strict ignores special rule", password: "passw0rd", strict: false},
		{name: "whitespace counts as special", password: "pass w0rd", strict: true},
		{name: "unicode letters count", password: "pässwörd1"},
		{name: "empty", password: "", wantErr: true, wantReason: reasonWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password, tt.strict)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var policyErr *PolicyError
			require.ErrorAs(t, err, &policyErr)
			assert.Equal(t, tt.wantReason, policyErr.Reason)
		})
	}
}

func TestValidate_ShortPasswordsAlwaysRejected(t *testing.T) {
	// Any password under the minimum length fails regardless of content.
	for _, p := range []string{"", "a", "1234567", "a1!B2@c"} {
		require.Error(t, Validate(p, false), "password %q", p)
		require.Error(t, Validate(p, true), "password %q", p)
	}
}
