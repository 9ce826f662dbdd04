package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordAccepted(t *testing.T) {
	for _, s := range []string{
		"Abcdefg1!",
		"N1ce-pass",
		"xY9{minimal",
	} {
		require.Empty(t, Password(s), "expected %q to pass", s)
	}
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		name     string
		password string
		problems int
	}{
		{"empty", "", 5},
		{"short lowercase", "abc", 4},
		{"missing symbol", "Abcdefg1", 1},
		{"missing uppercase", "abcdefg1!", 1},
		{"missing digit", "Abcdefgh!", 1},
		{"missing lowercase", "ABCDEFG1!", 1},
		{"seven chars otherwise fine", "Abcde1!", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, Password(tt.password), tt.problems)
		})
	}
}

func TestPasswordPredicates(t *testing.T) {
	require.True(t, HasMinLength("12345678"))
	require.False(t, HasMinLength("1234567"))
	require.True(t, HasSymbol("a~b"))
	require.False(t, HasSymbol("plainword1A"))
	require.True(t, HasUppercase("aBc"))
	require.True(t, HasLowercase("AbC"))
	require.True(t, HasDigit("a1"))
}
