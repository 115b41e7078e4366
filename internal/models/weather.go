// Package models holds the records decoded from the OpenWeatherMap one-call
// endpoint. All timestamps are unix seconds in UTC; conversion to local time
// happens at presentation time only.
package models

// WeatherResponse is the root of a one-call response.
type WeatherResponse struct {
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	Timezone       string          `json:"timezone" validate:"required"`
	TimezoneOffset int64           `json:"timezone_offset"`
	Current        CurrentWeather  `json:"current"`
	Hourly         []HourlyWeather `json:"hourly" validate:"dive"`
	Daily          []DailyWeather  `json:"daily" validate:"dive"`
}

// CurrentWeather represents the conditions at request time
type CurrentWeather struct {
	Dt         int64              `json:"dt" validate:"required"`
	Sunrise    int64              `json:"sunrise"`
	Sunset     int64              `json:"sunset"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feels_like"`
	Pressure   int                `json:"pressure"`
	Humidity   int                `json:"humidity"`
	DewPoint   float64            `json:"dew_point"`
	UVI        float64            `json:"uvi"`
	Clouds     int                `json:"clouds"`
	Visibility int                `json:"visibility"`
	WindSpeed  float64            `json:"wind_speed"`
	WindDeg    int                `json:"wind_deg"`
	Weather    []WeatherCondition `json:"weather"`
}

// HourlyWeather represents one forecast hour
type HourlyWeather struct {
	Dt         int64              `json:"dt" validate:"required"`
	Temp       float64            `json:"temp"`
	FeelsLike  float64            `json:"feels_like"`
	Pressure   int                `json:"pressure"`
	Humidity   int                `json:"humidity"`
	DewPoint   float64            `json:"dew_point"`
	UVI        float64            `json:"uvi"`
	Clouds     int                `json:"clouds"`
	Visibility int                `json:"visibility"`
	WindSpeed  float64            `json:"wind_speed"`
	WindDeg    int                `json:"wind_deg"`
	WindGust   *float64           `json:"wind_gust,omitempty"`
	Weather    []WeatherCondition `json:"weather"`
	Pop        float64            `json:"pop"`
}

// DailyWeather represents the aggregates for one forecast day
type DailyWeather struct {
	Dt        int64              `json:"dt" validate:"required"`
	Sunrise   int64              `json:"sunrise"`
	Sunset    int64              `json:"sunset"`
	Moonrise  int64              `json:"moonrise"`
	Moonset   int64              `json:"moonset"`
	MoonPhase float64            `json:"moon_phase"`
	Summary   string             `json:"summary"`
	Temp      DailyTemp          `json:"temp"`
	FeelsLike DailyFeelsLike     `json:"feels_like"`
	Pressure  int                `json:"pressure"`
	Humidity  int                `json:"humidity"`
	DewPoint  float64            `json:"dew_point"`
	WindSpeed float64            `json:"wind_speed"`
	WindDeg   int                `json:"wind_deg"`
	WindGust  *float64           `json:"wind_gust,omitempty"`
	Weather   []WeatherCondition `json:"weather"`
	Clouds    int                `json:"clouds"`
	Pop       float64            `json:"pop"`
	Rain      *float64           `json:"rain,omitempty"`
	UVI       float64            `json:"uvi"`
}

type DailyTemp struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyFeelsLike struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// WeatherCondition is a provider condition descriptor, e.g. {800 Clear "clear sky" 01d}.
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// PrimaryCondition returns the first condition, which is the one used for display.
func PrimaryCondition(conds []WeatherCondition) (WeatherCondition, bool) {
	if len(conds) == 0 {
		return WeatherCondition{}, false
	}
	return conds[0], true
}
