package data

import "fmt"

// defaultPagesJSON is the built-in document set used when storage is empty
// or unreadable. It is kept in the legacy flat-sections shape so the first
// start exercises the migrator.
const defaultPagesJSON = `{
  "Founding": {
    "category": "Foundation",
    "title": "Executive Branches",
    "sections": [
      {"header": "Founding Doctrine (OCC)", "content": "<p>The Office of Central Command stands as the guiding force of the Federation, its authority forged at the dawn of interstellar unification. Charged with maintaining cohesion among distant colonies and ensuring the Federation’s vision endures, the Office is both a council of leadership and a sentinel of ideology.Its founders envisioned a structure where governance and duty are inseparable—every decision reverberates across light-years, shaping the lives of countless citizens. The doctrines emphasize unity, accountability, and vigilance, forming the backbone of the Federation’s enduring order.</p>"},
      {"header": "Council of Directives", "content": "<p>At the core of the Office lies the Council of Directives, an assembly of the most senior and trusted leaders. They deliberate on matters of law, strategy, and expansion, balancing the needs of individual colonies with the overarching mission of the Federation. Their judgments are swift yet deliberate, ensuring that no decision undermines the collective security or prosperity of the stellar body.</p>"},
      {"header": "Symbol of Authority", "content": "<p>Every colony recognizes the seal of the Central Command: a circular emblem symbolizing unity and vigilance. It is displayed prominently on all official documents, vessels, and stations, serving as both a mark of leadership and a reminder that every action—from administrative tasks to fleet deployment—falls under the watchful eye of the Federation’s Executive.</p>"}
    ]
  },
  "Stability": {
    "category": "Control & Security",
    "title": "Ministry of Stability & Compliance",
    "sections": [
      {"header": "Compliance Protocols", "content": "<p>Internal compliance measures and social order enforcement.</p>"}
    ]
  },
  "Security": {
    "category": "Control & Security",
    "title": "Department of Interstellar Security",
    "sections": [
      {"header": "Security Mandates", "content": "<p>Intelligence and surveillance operations.</p>"}
    ]
  },
  "Defense": {
    "category": "Control & Security",
    "title": "Defense Directorate",
    "sections": [
      {"header": "Fleet Command", "content": "<p>Fleet deployment and planetary defense.</p>"}
    ]
  },
  "Colonies": {
    "category": "Expansion",
    "title": "Bureau of Colonies",
    "sections": [
      {"header": "Colonial Oversight", "content": "<p>Management of colonies and resources.</p>"}
    ]
  },
  "Relations": {
    "category": "Expansion",
    "title": "External Relations Authority",
    "sections": [
      {"header": "Diplomatic Affairs", "content": "<p>Diplomacy, trade, and foreign policy.</p>"}
    ]
  }
}`

// DefaultPages returns a fresh copy of the built-in document set. Every call
// decodes the constant again, so callers may mutate the result freely.
func DefaultPages() *RawCollection {
	rc, err := DecodeRawCollection([]byte(defaultPagesJSON))
	if err != nil {
		panic(fmt.Sprintf("data: built-in pages are malformed: %v", err))
	}
	return rc
}
