package formatter

// FallbackIcon is used for any icon code missing from the table.
const FallbackIcon = "wi-na"

// iconClasses maps provider icon codes to weather-icons classes. Day and night
// variants collapse where the pictogram carries no sun or moon.
var iconClasses = map[string]string{
	"01d": "wi-day-sunny",
	"01n": "wi-night-clear",
	"02d": "wi-day-cloudy",
	"02n": "wi-night-alt-cloudy",
	"03d": "wi-cloud",
	"03n": "wi-cloud",
	"04d": "wi-cloudy",
	"04n": "wi-cloudy",
	"09d": "wi-showers",
	"09n": "wi-showers",
	"10d": "wi-day-rain",
	"10n": "wi-night-alt-rain",
	"11d": "wi-thunderstorm",
	"11n": "wi-thunderstorm",
	"13d": "wi-snow",
	"13n": "wi-snow",
	"50d": "wi-fog",
	"50n": "wi-fog",
}

// IconClass returns the CSS class for a provider icon code.
func IconClass(code string) string {
	if class, ok := iconClasses[code]; ok {
		return class
	}
	return FallbackIcon
}

// IconCodes lists every code with a dedicated class.
func IconCodes() []string {
	codes := make([]string, 0, len(iconClasses))
	for code := range iconClasses {
		codes = append(codes, code)
	}
	return codes
}
