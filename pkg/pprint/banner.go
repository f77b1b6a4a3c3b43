package pprint

import "fmt"

// PrintBanner prints the hotkeys banner with version and tagline.
func PrintBanner(version, buildDate string) {
	w := stdout()
	lines := []string{
		StylePrimary.Render(" ██╗  ██╗ ██████╗ ████████╗██╗  ██╗███████╗██╗   ██╗███████╗"),
		StylePrimary.Render(" ██║  ██║██╔═══██╗╚══██╔══╝██║ ██╔╝██╔════╝╚██╗ ██╔╝██╔════╝"),
		StyleAccent.Render(" ███████║██║   ██║   ██║   █████╔╝ █████╗   ╚████╔╝ ███████╗"),
		StyleAccent.Render(" ██╔══██║██║   ██║   ██║   ██╔═██╗ ██╔══╝    ╚██╔╝  ╚════██║"),
		StyleText.Render(" ██║  ██║╚██████╔╝   ██║   ██║  ██╗███████╗   ██║   ███████║"),
		StyleMuted.Render(" ╚═╝  ╚═╝ ╚═════╝    ╚═╝   ╚═╝  ╚═╝╚══════╝   ╚═╝   ╚══════╝"),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)

	tagline := StyleMuted.Render("  Collision-free keyboard shortcuts for command-driven apps")
	versionStr := StyleAccent.Render("  " + version)
	if buildDate != "" {
		versionStr += StyleMuted.Render("  built " + buildDate)
	}

	fmt.Fprintln(w, tagline)
	fmt.Fprintln(w, versionStr)
	fmt.Fprintln(w)
}
