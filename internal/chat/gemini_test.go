package chat

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiRoleMapping(t *testing.T) {
	tests := []struct {
		role Role
		want genai.Role
	}{
		{RoleUser, genai.Role(genai.RoleUser)},
		{RoleAssistant, genai.Role(genai.RoleModel)},
	}

	for _, tt := range tests {
		if got := geminiRole(tt.role); got != tt.want {
			t.Errorf("geminiRole(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}
