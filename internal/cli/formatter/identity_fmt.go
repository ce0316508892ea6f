package formatter

import (
	"fmt"
	"strings"

	"github.com/jdelgad/nudge/internal/domain"
)

// FormatIdentityProfile renders the identity statements, grouped order
// preserved as stored.
func FormatIdentityProfile(profile *domain.IdentityProfile) string {
	var b strings.Builder

	b.WriteString(Header("Identity") + "\n")
	if len(profile.Statements) == 0 {
		b.WriteString(Dim("  No statements yet. Add one with: nudge identity add \"I am ...\"") + "\n")
		return b.String()
	}

	for _, s := range profile.Statements {
		line := "  " + s.Text
		if s.Category != nil {
			line += " " + render(StylePurple, "["+*s.Category+"]")
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d statement(s)", len(profile.Statements))))
	return b.String()
}
