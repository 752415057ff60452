package ui

import (
	"fmt"
	"strings"

	"walletwatch/internal/blocklist"
	"walletwatch/internal/session"
)

// RenderBlocklist renders the cached blocklist, newest first.
func RenderBlocklist(entries []blocklist.Entry) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Blocklist"))
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString(mutedStyle.Render("No addresses yet"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, entry := range entries {
		line := entry.Address
		if entry.ID != nil {
			line += " " + idStyle.Render("(id "+*entry.ID+")")
		}
		sb.WriteString(itemStyle.Render(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderStatus renders a session snapshot as the dashboard greeting.
func RenderStatus(state session.State) string {
	var sb strings.Builder
	if state.Loading {
		sb.WriteString(mutedStyle.Render("Checking session..."))
		sb.WriteString("\n")
		return sb.String()
	}

	if state.Authenticated {
		sb.WriteString(successStyle.Render(fmt.Sprintf("Hey there, %s!", state.User.DisplayName())))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Welcome back, we're happy to have you here!"))
	} else {
		sb.WriteString(errorStyle.Render("Not signed in."))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Run 'walletwatch login' to access your account."))
	}
	sb.WriteString("\n")

	if state.LastError != "" {
		sb.WriteString(errorStyle.Render(state.LastError))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderError renders a user-facing failure message.
func RenderError(message string) string {
	return errorStyle.Render(message)
}

// RenderSuccess renders a confirmation message.
func RenderSuccess(message string) string {
	return successStyle.Render(message)
}
