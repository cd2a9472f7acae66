package auth

import (
	"fmt"
	"tabwiki/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies installs the route rules of the edit-mode gate. It
// checks each policy before adding it, so it is safe to call repeatedly.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding edit-mode policies...")

	policies := [][]string{
		// Readers can browse, toggle edit mode and fetch static assets.
		{SubjectReader, "/", "GET"},
		{SubjectReader, "/view/*", "GET"},
		{SubjectReader, "/mode", "POST"},
		{SubjectReader, "/static/*", "GET"},
		{SubjectReader, "/robots.txt", "GET"},
		{SubjectReader, "/sitemap.xml", "GET"},

		// Editors additionally drive the editor and the page import endpoint.
		{SubjectEditor, "/edit/*", "*"},
		{SubjectEditor, "/api/pages/*", "POST"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Editors can do everything readers can.
	if has, _ := e.HasRoleForUser(SubjectEditor, SubjectReader); !has {
		if _, err := e.AddRoleForUser(SubjectEditor, SubjectReader); err != nil {
			log.Error(err, "Failed to add role 'editor' -> 'reader'")
		}
	}
	log.Info("Policy seeding complete.")
}
