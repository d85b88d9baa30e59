// Package domain defines the acting identity and its persisted metadata keys.
package domain

// Principal is the authenticated actor on whose behalf tokens are minted.
// Owned by the external identity system; read-only here.
type Principal struct {
	ID    string
	Email string
}

// Per-principal metadata keys.
const (
	// MetaFreeUseAt is the unix timestamp of the last free-tier generation,
	// driving the 24-hour free-access window.
	MetaFreeUseAt = "free_use_at"

	// MetaLastGenerationAt is the unix timestamp of the last successful
	// generation, driving the cooldown gate.
	MetaLastGenerationAt = "last_generation_at"

	// MetaHistory is the JSON-encoded generation history (newest first,
	// bounded).
	MetaHistory = "generation_history"
)
