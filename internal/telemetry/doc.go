// Package telemetry sets up OpenTelemetry trace and log export over OTLP
// HTTP for the chef server and worker.
package telemetry
