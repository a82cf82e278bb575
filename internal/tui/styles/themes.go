package styles

// NewRiffleTheme creates the default riffle theme: deep teal with an
// amber focus accent.
func NewRiffleTheme() *Theme {
	return &Theme{
		Name:   "riffle",
		IsDark: true,

		Primary:   ParseHex("#2DD4BF"), // Teal
		Secondary: ParseHex("#8B5CF6"), // Violet
		Accent:    ParseHex("#F59E0B"), // Amber

		BgBase:      ParseHex("#1A202C"),
		BgSubtle:    ParseHex("#2D3748"),
		BgHighlight: ParseHex("#4A5568"),

		FgBase:   ParseHex("#F7FAFC"),
		FgMuted:  ParseHex("#A0AEC0"),
		FgSubtle: ParseHex("#718096"),

		Border:      ParseHex("#4A5568"),
		BorderFocus: ParseHex("#F59E0B"),

		Success: ParseHex("#48BB78"),
		Error:   ParseHex("#F56565"),
		Warning: ParseHex("#ED8936"),
		Info:    ParseHex("#4299E1"),
	}
}

// NewPaperTheme creates a light theme for bright terminals.
func NewPaperTheme() *Theme {
	return &Theme{
		Name:   "paper",
		IsDark: false,

		Primary:   ParseHex("#0D9488"),
		Secondary: ParseHex("#6D28D9"),
		Accent:    ParseHex("#B45309"),

		BgBase:      ParseHex("#FFFFFF"),
		BgSubtle:    ParseHex("#F1F5F9"),
		BgHighlight: ParseHex("#E2E8F0"),

		FgBase:   ParseHex("#1E293B"),
		FgMuted:  ParseHex("#64748B"),
		FgSubtle: ParseHex("#94A3B8"),

		Border:      ParseHex("#CBD5E1"),
		BorderFocus: ParseHex("#B45309"),

		Success: ParseHex("#16A34A"),
		Error:   ParseHex("#DC2626"),
		Warning: ParseHex("#D97706"),
		Info:    ParseHex("#2563EB"),
	}
}
