package notify

import (
	"fmt"
	"strings"

	"github.com/example/parkctl/internal/actions"
)

// Format renders an action result into the plain-text message shared by
// the CLI output and the mail notifier.
func Format(result actions.Result) string {
	var b strings.Builder
	switch r := result.(type) {
	case *actions.BookResult:
		formatBook(&b, r)
	case *actions.ReleaseResult:
		if r.Outcome.Status == actions.StatusError {
			fmt.Fprintf(&b, "Releasing the spot for %s failed: %s\n", r.Request.ForDate, r.Outcome.Err)
		} else if r.Outcome.Status == actions.StatusFailure {
			fmt.Fprintf(&b, "Spot for %s was not released: %s\n", r.Request.ForDate, r.Outcome.Message)
		} else {
			fmt.Fprintf(&b, "Spot for %s was released.\n", r.Request.ForDate)
		}
	case *actions.BookingsResult:
		formatBookings(&b, r)
	case *actions.SpotsResult:
		formatSpots(&b, r)
	case *actions.BookFreeResult:
		formatBookFree(&b, r)
	case *actions.ErrorDetail:
		fmt.Fprintf(&b, "Error during %s: %s\n", r.Action, r.Err)
	default:
		fmt.Fprintf(&b, "Unknown action result: %s\n", result.Kind())
	}
	return b.String()
}

func formatBook(b *strings.Builder, r *actions.BookResult) {
	switch r.Outcome.Status {
	case actions.StatusSuccess:
		if r.Outcome.Spot != "" {
			fmt.Fprintf(b, "Spot %s in %s was booked for %s.\n", r.Outcome.Spot, r.Outcome.Zone, r.Outcome.ForDate)
		} else {
			fmt.Fprintf(b, "A spot in %s was booked for %s. %s\n", r.Outcome.Zone, r.Outcome.ForDate, r.Outcome.Note)
		}
	case actions.StatusError:
		fmt.Fprintf(b, "Couldn't book %v for %s: %s\n", r.Request.SpotNames, r.Request.ForDate, r.Outcome.Err)
	default:
		fmt.Fprintf(b, "Couldn't book %v for %s!\n", r.Request.SpotNames, r.Request.ForDate)
		for _, msg := range r.Outcome.Messages {
			fmt.Fprintf(b, "  %s\n", msg)
		}
	}
}

func formatBookings(b *strings.Builder, r *actions.BookingsResult) {
	if r.Outcome.Status != actions.StatusSuccess {
		fmt.Fprintf(b, "Couldn't retrieve bookings for %q: %s\n", r.Request.ZoneName, firstNonEmpty(r.Outcome.Err, r.Outcome.Message))
		return
	}
	b.WriteString("Retrieved the following bookings:\n\n")
	for _, booking := range r.Outcome.Bookings {
		spot := ""
		if booking.MyBooking != nil {
			spot = booking.MyBooking.Name
		}
		fmt.Fprintf(b, "%-10s | %8s |\n", booking.Day, spot)
	}
}

func formatSpots(b *strings.Builder, r *actions.SpotsResult) {
	if r.Outcome.Status != actions.StatusSuccess {
		fmt.Fprintf(b, "Couldn't retrieve spot states for %q: %s\n", r.Request.ZoneName, firstNonEmpty(r.Outcome.Err, r.Outcome.Message))
		return
	}
	fmt.Fprintf(b, "Retrieved the following spots in %s for %s:\n\n", r.Outcome.Zone, r.Outcome.ForDate)
	for _, s := range r.Outcome.Spots {
		state := ""
		if s.Free {
			state = "free"
		}
		fmt.Fprintf(b, "%-8s | %8s |\n", s.Name, state)
	}
}

func formatBookFree(b *strings.Builder, r *actions.BookFreeResult) {
	if r.Outcome.Status != actions.StatusSuccess {
		fmt.Fprintf(b, "Couldn't book free spots in %q: %s\n", r.Request.ZoneName, r.Outcome.Err)
		return
	}
	fmt.Fprintf(b, "I was looking for free spots from %s and tried to book spots %v.\n\n", r.Request.StartFrom, r.Request.SpotNames)
	if len(r.Outcome.Attempts) == 0 {
		b.WriteString("No free spots found.\n")
		return
	}
	b.WriteString("Bookings:\n")
	for _, attempt := range r.Outcome.Attempts {
		booked := "FAILED"
		if attempt.Outcome.Status == actions.StatusSuccess {
			booked = attempt.Outcome.Spot
		}
		fmt.Fprintf(b, "%-10s | %8s |\n", attempt.Request.ForDate, booked)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
