package shell

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lavanderia/laundries-cli/internal/application"
	"github.com/lavanderia/laundries-cli/internal/domain"
)

// RenderOptions carries presentation inputs that are not part of the
// session itself.
type RenderOptions struct {
	Now time.Time
	// Notice is an optional line shown above the shell, used by role
	// denials that fall back to the caller's own landing.
	Notice string
}

// View is everything a landing render needs: the session snapshot plus
// the shell/landing pair the routing table picked for it.
type View struct {
	Snapshot application.Snapshot
	RoleView application.RoleView
}

var shellNavs = map[application.Shell][]string{
	application.ShellEmployee: {"Home", "Orders", "Customers"},
	application.ShellManager:  {"Home", "Reports", "Employees", "Cash"},
	application.ShellAdmin:    {"Home", "Branches", "Global Orders", "Services", "Reports"},
}

func renderView(view View, opts RenderOptions, s styles) string {
	lines := make([]string, 0, 6)

	if opts.Notice != "" {
		lines = append(lines, s.notice.Render(opts.Notice))
	}

	lines = append(lines,
		s.title.Render("Laundries Ops Console"),
		s.header.Render(headerLine(view, opts)),
	)

	if !view.Snapshot.IsAuthenticated {
		lines = append(lines, s.empty.Render("Not signed in."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.nav.Render(renderNav(view.RoleView.Shell, s)))
	lines = append(lines, s.body.Render(renderLanding(view, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(view View, opts RenderOptions) string {
	if !view.Snapshot.IsAuthenticated {
		return "session: none"
	}

	header := fmt.Sprintf("shell: %s", view.RoleView.Shell)
	if !opts.Now.IsZero() {
		header += " · " + opts.Now.Format("2006-01-02 15:04")
	}
	return header
}

func renderNav(shell application.Shell, s styles) string {
	items := shellNavs[shell]
	if len(items) == 0 {
		items = shellNavs[application.ShellEmployee]
	}

	parts := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			parts = append(parts, s.header.Render("  |  "))
		}
		parts = append(parts, s.navItem.Render(item))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderLanding(view View, s styles) string {
	session := view.Snapshot.Session
	parts := []string{
		s.detail.Render(fmt.Sprintf("Signed in as %s (%s)", session.User.Email, roleLabel(session.User.Role))),
	}

	if session.Profile != nil {
		parts = append(parts,
			detailLine(s, "staff", fmt.Sprintf("%s (%s)", session.Profile.Name, session.Profile.StaffID)),
			detailLine(s, "branch", session.Profile.BranchID),
		)
	} else {
		parts = append(parts, s.empty.Render("No staff profile on this session."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func detailLine(s styles, key, value string) string {
	if value == "" {
		value = "n/a"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.detailKey.Render(key+": "), s.detail.Render(value))
}

func roleLabel(role domain.Role) string {
	if role == "" {
		return "no role"
	}
	return string(role)
}
