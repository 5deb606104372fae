// issue-token signs an identity token with the configured secret so a
// local browser or curl can act as a signed-in user without the hosted
// provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/unforum-dev/unforum/shared/config"
	"github.com/unforum-dev/unforum/shared/identity"
)

func main() {
	var (
		configFolder string
		user         identity.User
		providers    string
		ttl          time.Duration
	)
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&user.Id, "id", "dev-user", "user id (token subject)")
	flag.StringVar(&user.DisplayName, "name", "Dev User", "display name")
	flag.StringVar(&user.Email, "email", "", "primary email")
	flag.StringVar(&user.AvatarURL, "avatar", "", "avatar URL")
	flag.StringVar(&providers, "provider_emails", "", "comma separated provider-supplied emails")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if providers != "" {
		user.ProviderEmails = strings.Split(providers, ",")
	}

	cfg := config.MustLoad(configFolder)
	token, err := identity.NewVerifier(cfg.IdentitySecret()).Issue(user, ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
	fmt.Println()
	fmt.Printf("Browser: set cookie %s=<token> for the frontend host\n", identity.TokenCookie)
	fmt.Printf("curl:    -H \"Authorization: Bearer <token>\"\n")
}
