package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		Primary:   "#cba6f7", // Mauve
		Secondary: "#89b4fa", // Blue
		Tertiary:  "#b4befe", // Lavender

		BgCrust:    "#11111b",
		BgBase:     "#1e1e2e",
		BgSurface0: "#313244",
		BgSurface1: "#45475a",

		FgMuted:  "#6c7086",
		FgSubtle: "#a6adc8",
		FgBase:   "#cdd6f4",
		FgBright: "#f5e0dc",

		Success: "#a6e3a1",
		Warning: "#f9e2af",
		Error:   "#f38ba8",
		Info:    "#89dceb",
	}
}
