// Command backoffice is a small staff utility: it signs in against the
// concierge API, resolves the effective role through the session resolver
// and reports whether the account may enter the back office.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rivieraprestige/concierge-api/internal/backoffice"
	"github.com/rivieraprestige/concierge-api/internal/session"
)

func main() {
	_ = godotenv.Load()

	var (
		apiURL   = flag.String("api", envDefault("BACKOFFICE_API_URL", "http://localhost:8080"), "base URL of the concierge API")
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		name     = flag.String("name", "", "display name (register only)")
		register = flag.Bool("register", false, "create the account instead of signing in")
		signOut  = flag.Bool("signout", false, "sign out after the check, revoking the session")
		timeout  = flag.Duration("timeout", 15*time.Second, "overall deadline")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := backoffice.New(*apiURL, nil)
	resolver := session.NewResolver(client)
	defer resolver.Close()

	// Watch fires on every snapshot change; we only care about the ones
	// where resolution has completed.
	resolved := make(chan session.Snapshot, 8)
	removeWatch := resolver.Watch(func(s session.Snapshot) {
		if !s.Loading {
			select {
			case resolved <- s:
			default:
			}
		}
	})
	defer removeWatch()

	var err error
	if *register {
		err = resolver.SignUp(ctx, *email, *password, *name)
	} else {
		err = resolver.SignIn(ctx, *email, *password)
	}
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	// Snapshots arrive in steps: the signed-in state first with the lowest
	// privilege, then again once the role lookup lands. Take the last one
	// within a short settle window.
	var snap session.Snapshot
	select {
	case snap = <-resolved:
	case <-ctx.Done():
		log.Fatalf("timed out waiting for session resolution")
	}
	for settled := false; !settled; {
		select {
		case snap = <-resolved:
		case <-time.After(500 * time.Millisecond):
			settled = true
		case <-ctx.Done():
			settled = true
		}
	}

	printSnapshot(snap)

	if *signOut {
		if err := resolver.SignOut(ctx); err != nil {
			log.Fatalf("sign out: %v", err)
		}
		fmt.Println("signed out")
	}
}

func printSnapshot(s session.Snapshot) {
	if !s.SignedIn() {
		fmt.Println("signed out")
		return
	}
	fmt.Printf("user:  %s (id %d)\n", s.User.Email, s.User.ID)
	fmt.Printf("role:  %s\n", s.Role)
	fmt.Printf("staff: %v (admin=%v assistant=%v)\n", s.HasStaffAccess(), s.IsAdmin(), s.IsAssistant())
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
