package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/autounclaim/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

type RenderOptions struct {
	Now time.Time
	// Period is the configured inactivity period, shown in the header when set.
	Period string
}

func renderView(result domain.PruneResult, opts RenderOptions, s styles) string {
	lines := []string{titleLine(result.Mode(), s), s.header.Render(headerLine(result, opts))}

	if result.IsEmpty() {
		lines = append(lines, s.empty.Render("No claims held by inactive owners."))
	}

	for _, namespace := range result.Namespaces() {
		lines = append(lines, s.section.Render(renderNamespace(namespace, result.ByNamespace()[namespace], opts, s)))
	}

	if owners := result.AffectedOwners(); len(owners) > 0 {
		lines = append(lines, s.section.Render(
			s.detail.Render("Affected owners: ")+s.owner.Render(strings.Join(owners, ", ")),
		))
	}

	if skipped := result.SkippedNamespaces(); len(skipped) > 0 {
		names := make([]string, 0, len(skipped))
		for _, namespace := range skipped {
			names = append(names, string(namespace))
		}
		lines = append(lines, s.warning.Render("Skipped worlds (not loaded): "+strings.Join(names, ", ")))
	}

	if failures := result.Failures(); len(failures) > 0 {
		lines = append(lines, s.section.Render(renderFailures(failures, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func titleLine(mode domain.ExecutionMode, s styles) string {
	if mode.IsPreview() {
		return s.preview.Render("Preview: nothing was removed")
	}
	return s.title.Render("Check completed!")
}

func headerLine(result domain.PruneResult, opts RenderOptions) string {
	verb := "removed"
	if result.Mode().IsPreview() {
		verb = "would remove"
	}

	parts := []string{
		fmt.Sprintf("%s: %d claim(s)", verb, result.TotalCount()),
		fmt.Sprintf("affected owners: %d", len(result.AffectedOwners())),
	}
	if opts.Period != "" {
		parts = append(parts, "period: "+opts.Period)
	}

	return strings.Join(parts, " | ")
}

func renderNamespace(namespace domain.Namespace, claims []domain.ClaimDescriptor, opts RenderOptions, s styles) string {
	parts := []string{s.namespace.Render(fmt.Sprintf("%s (%d)", namespace, len(claims)))}

	for _, claim := range claims {
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Top,
			"  ",
			s.claim.Render(string(claim.ClaimID)),
			"  ",
			s.owner.Render(claim.OwnerName),
			"  ",
			s.detail.Render(lastSeen(claim.LastActivity, opts.Now)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderFailures(failures []domain.RemovalFailure, s styles) string {
	parts := []string{s.warning.Render(fmt.Sprintf("Failed removals: %d", len(failures)))}
	for _, failure := range failures {
		parts = append(parts, s.detail.Render(fmt.Sprintf(
			"  %s/%s: %s",
			failure.Claim.Namespace,
			failure.Claim.ClaimID,
			failure.Reason,
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func lastSeen(at, now time.Time) string {
	if at.IsZero() {
		return "never seen"
	}
	if now.IsZero() {
		return "last seen " + at.UTC().Format(time.RFC3339)
	}
	return "last seen " + humanize.RelTime(at, now, "ago", "from now")
}
