package analytics

import "fmt"

var categoryPalette = map[string]string{
	"Furniture":       "#220e24",
	"Kitchen":         "#342056",
	"Electronics":     "#5454c5",
	"Footwear":        "#639cd9",
	"Gaming":          "#421d57",
	"Fitness":         "#514e57",
	"Home Automation": "#563e80",
	"Outdoor":         "#777280",
	"Photography":     "#ae96d9",
	"Office":          "#342580",
	"Personal Care":   "#5039c5",
	"Wearable Tech":   "#413c57",
}

// CategoryColor returns the palette entry for category, or a hue derived
// from its position in the legend.
func CategoryColor(category string, index int) string {
	if c, ok := categoryPalette[category]; ok {
		return c
	}
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", index*30)
}

// Colors maps each category to its color, using its position for the
// fallback.
func Colors(categories []string) map[string]string {
	out := make(map[string]string, len(categories))
	for i, c := range categories {
		out[c] = CategoryColor(c, i)
	}
	return out
}
