// Package weatherboard renders the OpenWeatherMap one-call forecast for one
// fixed location.
//
// # Architecture
//
// A run is a straight pipeline, each step consuming the previous step's value:
//   - api: one GET against the one-call endpoint, decoded into models
//   - formatter: local-time strings, icon classes, truncated forecast lists
//   - render: console text and an html/template report on disk
//   - snapshot: best-effort headless Chrome screenshot of the report
//
// Supporting packages:
//   - config: YAML + environment configuration (viper)
//   - metrics: Prometheus collectors exported as a node_exporter textfile
//   - pipeline: orchestration, run IDs and stage timing
//   - scheduler: optional cron-driven repeat mode
//
// Example Usage
//
//	OWM_API_KEY=... weatherboard -config config.yaml
//	OWM_API_KEY=... weatherboard -schedule "*/30 * * * *"
//
// For more information about specific packages, see their respective
// documentation.
package weatherboard
