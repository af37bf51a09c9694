package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbarbosa/libanac/internal/models"
)

// root runs the command loop. Commands and the prompts they trigger read
// from the same buffered reader; a second buffer over stdin would read
// ahead and swallow the lines the prompts expect.
func (a *App) root(ctx context.Context) {
	fmt.Fprintf(a.out, "Connected to %s as %s (type 'help' for commands)\n",
		a.config.BaseURL, a.session.Username())

	for {
		fmt.Fprintf(a.out, "sintac (%s)> ", a.session.Username())
		line, err := a.reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Available commands: whoami, aircraft <registration>, add, passwd, exit")

		case "whoami":
			a.whoami(ctx)

		case "aircraft":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: aircraft <registration>")
				continue
			}
			a.aircraft(ctx, args[0])

		case "add":
			a.addDraft(ctx)

		case "passwd":
			a.changePassword(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}

		if err != nil {
			return
		}
	}
}

func (a *App) whoami(ctx context.Context) {
	name, err := a.session.Identity(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return
	}
	fmt.Fprintf(a.out, "%s (logbook id %s)\n", name, a.logbook.PilotID())
}

func (a *App) aircraft(ctx context.Context, registration string) {
	info, err := a.logbook.Aircraft(ctx, registration)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return
	}
	for k, v := range info {
		fmt.Fprintf(a.out, "  %s: %s\n", k, v)
	}
}

func (a *App) addDraft(ctx context.Context) {
	prompt := func(label string) string {
		v, err := GetSimpleText(a.reader, label, a.out)
		if err != nil {
			return ""
		}
		return v
	}

	draft := models.Draft{
		Date:             prompt("Flight date (dd/mm/yyyy)"),
		Landings:         prompt("Landings"),
		Role:             models.Role(prompt("Role (02=SIC, 03=CFI, 06=PIC, 07=student)")),
		Registration:     prompt("Aircraft registration"),
		Departure:        prompt("Departure airport (ICAO)"),
		Destination:      prompt("Destination airport (ICAO)"),
		Remarks:          prompt("Remarks (optional)"),
		DayTime:          prompt("Day time (hh:mm or h.d, optional)"),
		NightTime:        prompt("Night time (hh:mm or h.d, optional)"),
		CrossCountryTime: prompt("Cross-country time (optional)"),
		InstrumentTime:   prompt("Instrument time (optional)"),
		HoodTime:         prompt("Hood time (optional)"),
	}

	if err := a.logbook.SubmitDraft(ctx, draft); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return
	}
	fmt.Fprintln(a.out, "Draft saved.")
}

func (a *App) changePassword(ctx context.Context) {
	fmt.Fprintln(a.out, "New password:")
	pw, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return
	}
	if err := a.session.ChangePassword(ctx, string(pw)); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return
	}
	fmt.Fprintln(a.out, "Password changed.")
}
