package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/daykeeper/internal/models"
)

// List prints every stored event for the signed-in user.
func (a *App) List(ctx context.Context) error {
	user := a.auth.Snapshot().Data.User
	if user == nil {
		printlnFn("Sign in first.")
		return nil
	}

	list, err := a.cal.Load(ctx, user.ID)
	if err != nil {
		a.log.Error(ctx, "error loading events", "error", err)
		return err
	}
	if len(list) == 0 {
		printlnFn("No events yet. Type 'add' to create one.")
		return nil
	}
	for _, ev := range list {
		printlnFn(formatEvent(ev))
	}
	return nil
}

// Day prints the events on the currently selected date.
func (a *App) Day(ctx context.Context) error {
	if a.auth.Snapshot().Data.User == nil {
		printlnFn("Sign in first.")
		return nil
	}

	snap := a.cal.Snapshot()
	day := a.cal.SelectedDateEvents()
	printlnFn(fmt.Sprintf("Events on %s:", snap.Data.SelectedDate))
	if len(day) == 0 {
		printlnFn("  (none)")
		return nil
	}
	for _, ev := range day {
		printlnFn(formatEvent(ev))
	}
	return nil
}

// SelectDate changes the focused date and shows that day's events.
func (a *App) SelectDate(ctx context.Context, date string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		printlnFn("Invalid date, expected YYYY-MM-DD:", date)
		return err
	}
	a.cal.SelectDate(date)
	return a.Day(ctx)
}

// Add prompts for event details and creates the event.
func (a *App) Add(ctx context.Context) error {
	user := a.auth.Snapshot().Data.User
	if user == nil {
		printlnFn("Sign in first.")
		return nil
	}

	draft, err := a.eventDraftDetails()
	if err != nil {
		return err
	}

	ev, err := a.cal.Create(ctx, user.ID, *draft)
	if err != nil {
		printlnFn("Create failed:", err.Error())
		return err
	}
	printlnFn("Created:", formatEvent(*ev))
	return nil
}

// Edit prompts for an event ID and new details, then updates the event.
func (a *App) Edit(ctx context.Context) error {
	user := a.auth.Snapshot().Data.User
	if user == nil {
		printlnFn("Sign in first.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter event ID", os.Stdout)
	if err != nil {
		return err
	}

	draft, err := a.eventDraftDetails()
	if err != nil {
		return err
	}

	ev, err := a.cal.Update(ctx, user.ID, id, *draft)
	if err != nil {
		printlnFn("Update failed:", err.Error())
		return err
	}
	printlnFn("Updated:", formatEvent(*ev))
	return nil
}

// Delete prompts for an event ID and removes the event.
func (a *App) Delete(ctx context.Context) error {
	user := a.auth.Snapshot().Data.User
	if user == nil {
		printlnFn("Sign in first.")
		return nil
	}

	id, err := getSimpleText(a.reader, "Enter event ID", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.cal.Delete(ctx, user.ID, id); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) eventDraftDetails() (*models.EventDraft, error) {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return nil, err
	}
	dateStr, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(models.DateLayout, dateStr)
	if err != nil {
		printlnFn("Invalid date, expected YYYY-MM-DD:", dateStr)
		return nil, err
	}
	start, err := getSimpleText(a.reader, "Enter start time (HH:MM)", os.Stdout)
	if err != nil {
		return nil, err
	}
	end, err := getSimpleText(a.reader, "Enter end time (HH:MM)", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &models.EventDraft{
		Title:       title,
		Description: description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	}, nil
}

func formatEvent(ev models.Event) string {
	s := fmt.Sprintf("  [%s] %s %s-%s %s", ev.ID, ev.Date, ev.StartTime, ev.EndTime, ev.Title)
	if ev.Description != "" {
		s += " - " + ev.Description
	}
	return s
}
