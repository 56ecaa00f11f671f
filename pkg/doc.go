// Package pkg provides the core libraries for Knomap concept graph analysis.
//
// # Overview
//
// Knomap analyzes concept graphs - networks of fields, theories, algorithms,
// tools, and people - and positions them on a 2D canvas. The pkg directory
// is organized into three main areas:
//
//  1. Engine - Pure graph analysis (concept, model, traverse, similarity,
//     cluster, scoring, layout)
//  2. Infrastructure - Caching, storage, errors, observability
//  3. Pipeline - Orchestration with caching for CLI and API
//
// # Architecture
//
// The typical data flow through Knomap:
//
//	Concept Graph (JSON)
//	         ↓
//	model.Build (adjacency index)
//	         ↓
//	layout.Apply / traverse / similarity / cluster / scoring
//	         ↓
//	Positioned Graph + Viewport
//
// The engine packages are pure: they take a graph snapshot, rebuild their
// model per call, and never mutate their input. The pipeline package adds
// content-hash caching on top; the store package persists named graphs.
package pkg
