// Package tunedeck is an ECU diagnostic and tuning workstation core.
//
// # Overview
//
// Tunedeck keeps a file-backed catalog of vehicles, ECU profiles, saved
// tunes, settings and an activity log, simulates CAN bus traffic for
// bench work, and evaluates telemetry against per-vehicle tuning limits.
//
// The platform consists of four main components:
//   - API Server: REST API and WebSocket stream over the workstation core
//   - Document Store: atomic JSON collections under a content root
//   - Bus Simulator: named CAN buses sharing a bounded message buffer
//   - Diagnostic Engine: telemetry scoring, alerts and bounded history
//
// # Architecture
//
//	┌─────────────────┐       ┌─────────────────┐
//	│  API Server     │◄──────┤  CLI (cobra)    │
//	│  (Echo REST/WS) │       │                 │
//	└────────┬────────┘       └─────────────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  Document Store │◄──────┤  Backup Manager │
//	│  (JSON files)   │       │  (snapshots)    │
//	└────────┬────────┘       └─────────────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  Diagnostics    │       │  Bus Simulator  │
//	│  (scoring)      │       │  (CAN frames)   │
//	└─────────────────┘       └─────────────────┘
//
// # Core Features
//
// Document Store:
//   - Vehicles, ECU profiles, tunes, settings and logs as JSON documents
//   - Temp-file-then-rename writes, per-collection locking
//   - Embedded seed catalog on first start
//
// Backup Manager:
//   - Timestamped point-in-time snapshots with rollback on failure
//   - Staged, atomic restore
//
// Bus Simulator:
//   - Named buses, bounded shared buffer, non-consuming reads
//   - Synthetic telemetry frames for bench testing
//
// Diagnostic Engine:
//   - Engine, transmission, emissions and sensor checks
//   - 0-100 scoring against per-vehicle limits, alert tracking
//
// # Getting Started
//
//	tunedeck server                  # start the API server
//	tunedeck backup create           # snapshot the document store
//	tunedeck query vehicles          # inspect the catalog
//	tunedeck integrity scan          # audit the store
//
// Configuration is read from config.yaml, .env files and TD_ environment
// variables; see the config package for details.
package tunedeck
