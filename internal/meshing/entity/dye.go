package entity

// DyeRGB is the 16 Minecraft dye colors as normalized RGBA, used as the
// banner base-color tint. Unknown names fall back to white.
func DyeRGB(color string) [4]float32 {
	switch color {
	case "white":
		return [4]float32{1.0, 1.0, 1.0, 1.0}
	case "orange":
		return [4]float32{0.85, 0.52, 0.18, 1.0}
	case "magenta":
		return [4]float32{0.70, 0.33, 0.85, 1.0}
	case "light_blue":
		return [4]float32{0.40, 0.60, 0.85, 1.0}
	case "yellow":
		return [4]float32{0.96, 0.86, 0.26, 1.0}
	case "lime":
		return [4]float32{0.50, 0.80, 0.10, 1.0}
	case "pink":
		return [4]float32{0.95, 0.55, 0.65, 1.0}
	case "gray":
		return [4]float32{0.37, 0.42, 0.46, 1.0}
	case "light_gray":
		return [4]float32{0.60, 0.60, 0.55, 1.0}
	case "cyan":
		return [4]float32{0.10, 0.55, 0.60, 1.0}
	case "purple":
		return [4]float32{0.50, 0.25, 0.70, 1.0}
	case "blue":
		return [4]float32{0.20, 0.25, 0.70, 1.0}
	case "brown":
		return [4]float32{0.50, 0.32, 0.20, 1.0}
	case "green":
		return [4]float32{0.35, 0.45, 0.14, 1.0}
	case "red":
		return [4]float32{0.70, 0.20, 0.20, 1.0}
	case "black":
		return [4]float32{0.10, 0.10, 0.13, 1.0}
	default:
		return [4]float32{1.0, 1.0, 1.0, 1.0}
	}
}
