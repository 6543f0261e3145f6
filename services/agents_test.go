package services

import (
	"testing"
	"time"

	"listings-feed/models"
)

func agentRow(mls, email, name, status, ts string, line int) *models.Row {
	r := row(mls, ts, line)
	r.AgentEmail = email
	r.AgentName = name
	r.Status = status
	return r
}

func TestAgentsUniqueByEmail(t *testing.T) {
	svc := NewAgentService(newTestLogger(), false)
	rows := []*models.Row{
		agentRow("MLS1", "jane@example.com", "Jane Doe", "Active", "2024-01-01 10:00:00", 2),
		agentRow("MLS2", "jane@example.com", "Jane Doe", "Closed", "2024-02-01 10:00:00", 3),
		agentRow("MLS3", "bob@example.com", "Bob Roe", "Active", "2024-01-15 10:00:00", 4),
	}

	report := svc.Build(rows, time.Now().UTC())

	if report.Count != 2 {
		t.Fatalf("Count: got %d, want 2", report.Count)
	}
	seen := make(map[string]bool)
	for _, a := range report.Agents {
		if a.Email == "" {
			t.Error("agent with empty email in output")
		}
		if seen[a.Email] {
			t.Errorf("duplicate email in output: %s", a.Email)
		}
		seen[a.Email] = true
	}
}

func TestAgentsExcludeMissingEmail(t *testing.T) {
	svc := NewAgentService(newTestLogger(), false)
	rows := []*models.Row{
		agentRow("MLS1", "", "No Email", "Active", "2024-01-01 10:00:00", 2),
		agentRow("MLS2", "not-an-email", "Bad Email", "Active", "2024-01-01 10:00:00", 3),
		agentRow("MLS3", "jane@example.com", "Jane Doe", "Active", "2024-01-01 10:00:00", 4),
	}

	report := svc.Build(rows, time.Now().UTC())

	if report.Count != 1 {
		t.Errorf("Count: got %d, want 1 (rows without a usable email excluded)", report.Count)
	}
}

func TestAgentsActiveListingCount(t *testing.T) {
	svc := NewAgentService(newTestLogger(), false)
	rows := []*models.Row{
		agentRow("MLS1", "jane@example.com", "Jane Doe", "Active", "2024-01-01 10:00:00", 2),
		agentRow("MLS2", "jane@example.com", "Jane Doe", "active", "2024-01-02 10:00:00", 3),
		agentRow("MLS3", "jane@example.com", "Jane Doe", "Expired", "2024-01-03 10:00:00", 4),
		agentRow("MLS4", "bob@example.com", "Bob Roe", "Closed", "2024-01-01 10:00:00", 5),
	}

	report := svc.Build(rows, time.Now().UTC())

	for _, a := range report.Agents {
		switch a.Email {
		case "jane@example.com":
			if a.ActiveListingCount != 2 {
				t.Errorf("jane: ActiveListingCount got %d, want 2", a.ActiveListingCount)
			}
		case "bob@example.com":
			if a.ActiveListingCount != 0 {
				t.Errorf("bob: ActiveListingCount got %d, want 0", a.ActiveListingCount)
			}
		}
	}
}

func TestAgentsActiveOnlyFilter(t *testing.T) {
	rows := []*models.Row{
		agentRow("MLS1", "jane@example.com", "Jane Doe", "Active", "2024-01-01 10:00:00", 2),
		agentRow("MLS2", "bob@example.com", "Bob Roe", "Closed", "2024-01-01 10:00:00", 3),
	}

	all := NewAgentService(newTestLogger(), false).Build(rows, time.Now().UTC())
	if all.Count != 2 {
		t.Errorf("default: got %d agents, want 2 (zero-active agents stay verified)", all.Count)
	}

	activeOnly := NewAgentService(newTestLogger(), true).Build(rows, time.Now().UTC())
	if activeOnly.Count != 1 {
		t.Fatalf("active-only: got %d agents, want 1", activeOnly.Count)
	}
	if activeOnly.Agents[0].Email != "jane@example.com" {
		t.Errorf("active-only kept the wrong agent: %s", activeOnly.Agents[0].Email)
	}
}

func TestAgentsOrderedByEmail(t *testing.T) {
	svc := NewAgentService(newTestLogger(), false)
	rows := []*models.Row{
		agentRow("MLS1", "zoe@example.com", "Zoe", "Active", "2024-01-01 10:00:00", 2),
		agentRow("MLS2", "amy@example.com", "Amy", "Active", "2024-01-01 10:00:00", 3),
		agentRow("MLS3", "mia@example.com", "Mia", "Active", "2024-01-01 10:00:00", 4),
	}

	report := svc.Build(rows, time.Now().UTC())

	want := []string{"amy@example.com", "mia@example.com", "zoe@example.com"}
	for i, a := range report.Agents {
		if a.Email != want[i] {
			t.Errorf("agent %d: got %s, want %s", i, a.Email, want[i])
		}
	}
}

func TestAgentsNameFromMostRecentRecord(t *testing.T) {
	svc := NewAgentService(newTestLogger(), false)
	rows := []*models.Row{
		agentRow("MLS2", "jane@example.com", "Jane Married-Name", "Active", "2024-06-01 10:00:00", 2),
		agentRow("MLS1", "jane@example.com", "Jane Doe", "Active", "2024-01-01 10:00:00", 3),
	}

	report := svc.Build(rows, time.Now().UTC())

	if report.Agents[0].Name != "Jane Married-Name" {
		t.Errorf("Name: got %q, want the most recent record's name", report.Agents[0].Name)
	}
}

func TestAgentsBackfillFromOlderRecord(t *testing.T) {
	svc := NewAgentService(newTestLogger(), false)
	older := agentRow("MLS1", "jane@example.com", "Jane Doe", "Closed", "2024-01-01 10:00:00", 2)
	older.AgentPhone = "(602) 555-1234"
	newer := agentRow("MLS2", "jane@example.com", "Jane Doe", "Active", "2024-06-01 10:00:00", 3)

	report := svc.Build([]*models.Row{newer, older}, time.Now().UTC())

	if report.Agents[0].Phone != "(602) 555-1234" {
		t.Errorf("Phone: got %q, want backfill from the older record", report.Agents[0].Phone)
	}
}
