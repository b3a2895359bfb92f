package main

import (
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/api/workplace"
	"bytes"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func txResponse(id, wp, kind, method, amount string, day time.Time) transaction.TransactionResponse {
	return transaction.TransactionResponse{
		ID:          id,
		WorkplaceID: wp,
		Type:        kind,
		Method:      method,
		Amount:      decimal.RequireFromString(amount),
		OccurredAt:  day,
		Year:        day.Year(),
		Month:       int(day.Month()),
	}
}

func startFakeAPI(t *testing.T) string {
	t.Helper()

	data := map[string][]transaction.TransactionResponse{
		"w1": {
			txResponse("t3", "w1", "expense", "Online", "4", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
			txResponse("t2", "w1", "income", "Cash", "10", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
			txResponse("t1", "w1", "income", "Cash", "5", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)),
		},
		"w2": {
			txResponse("t9", "w2", "income", "Online", "700", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		},
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api/v1")

	api.Get("/workplaces", func(c *fiber.Ctx) error {
		return c.JSON([]workplace.WorkplaceResponse{
			{ID: "w1", Name: "Home", IsActive: true},
			{ID: "w2", Name: "Clinic", IsActive: true},
		})
	})
	api.Get("/transactions", func(c *fiber.Ctx) error {
		txs := data[c.Query("workplace_id")]
		return c.JSON(transaction.TransactionListResponse{Transactions: txs, Count: len(txs)})
	})
	api.Get("/reports/monthly", func(c *fiber.Ctx) error {
		c.Attachment("Home_ana_03_2024.pdf")
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send([]byte("%PDF-1.3"))
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String() + "/api/v1"
}

func newTestApp(t *testing.T) (*app, *bytes.Buffer, *stateFile) {
	t.Helper()

	state, err := openState(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := state.SetSession("tok-1", "ana@example.com"); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	out := &bytes.Buffer{}
	a := newApp(startFakeAPI(t), state, logger, out, io.Discard)
	a.location = time.UTC
	a.now = func() time.Time { return testNow }
	return a, out, state
}

func TestWorkplacesMarksCurrent(t *testing.T) {
	a, out, state := newTestApp(t)

	if err := a.run(context.Background(), "workplaces", nil); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if saved, _ := state.Load(); saved != "w1" {
		t.Errorf("saved pointer = %q, want w1", saved)
	}
	if !strings.Contains(out.String(), "*  Home") {
		t.Errorf("output does not mark Home as current:\n%s", out.String())
	}
}

func TestSwitchPersistsPointer(t *testing.T) {
	a, out, state := newTestApp(t)

	if err := a.run(context.Background(), "switch", []string{"Clinic"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if saved, _ := state.Load(); saved != "w2" {
		t.Errorf("saved pointer = %q, want w2", saved)
	}
	if !strings.Contains(out.String(), "700.00") {
		t.Errorf("output misses Clinic totals:\n%s", out.String())
	}

	if err := a.run(context.Background(), "switch", []string{"Nowhere"}); err == nil {
		t.Error("switch to unknown workplace succeeded")
	}
}

func TestSummaryDefaultsToCurrentMonth(t *testing.T) {
	a, out, _ := newTestApp(t)

	if err := a.run(context.Background(), "summary", nil); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Home | March 2024") {
		t.Errorf("header missing:\n%s", got)
	}
	if !strings.Contains(got, "6.00") {
		t.Errorf("net 6.00 missing:\n%s", got)
	}
	if strings.Contains(got, "t1") {
		t.Errorf("February transaction listed in March:\n%s", got)
	}
}

func TestSummaryByMonthAndDate(t *testing.T) {
	a, out, _ := newTestApp(t)

	if err := a.run(context.Background(), "summary", []string{"-month", "2"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "February 2024") || !strings.Contains(out.String(), "5.00") {
		t.Errorf("month output:\n%s", out.String())
	}

	out.Reset()
	if err := a.run(context.Background(), "summary", []string{"-date", "2024-03-05"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "2024-03-05") || !strings.Contains(out.String(), "-4.00") {
		t.Errorf("date output:\n%s", out.String())
	}

	if err := a.run(context.Background(), "summary", []string{"-month", "2", "-date", "2024-03-05"}); err == nil {
		t.Error("month and date together accepted")
	}
}

func TestReportSavedUnderServerName(t *testing.T) {
	a, _, _ := newTestApp(t)
	dir := t.TempDir()

	if err := a.run(context.Background(), "report", []string{"monthly", "-out", dir}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "Home_ana_03_2024.pdf"))
	if err != nil {
		t.Fatalf("report not saved: %v", err)
	}
	if string(raw) != "%PDF-1.3" {
		t.Errorf("content = %q", raw)
	}

	if err := a.run(context.Background(), "report", []string{"weekly"}); err == nil {
		t.Error("unknown report kind accepted")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	a, _, _ := newTestApp(t)

	if err := a.run(context.Background(), "delete", []string{"t1"}); err == nil {
		t.Error("delete without -yes succeeded")
	}
}

func TestUnknownCommand(t *testing.T) {
	a, _, _ := newTestApp(t)

	if err := a.run(context.Background(), "frobnicate", nil); !errors.Is(err, errUnknownCommand) {
		t.Errorf("err = %v, want errUnknownCommand", err)
	}
}

func TestStateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	state, err := openState(path)
	if err != nil {
		t.Fatalf("openState() on missing file error = %v", err)
	}
	if id, _ := state.Load(); id != "" {
		t.Errorf("empty state pointer = %q", id)
	}

	if err := state.SetSession("tok", "ana@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := state.Save("w7"); err != nil {
		t.Fatal(err)
	}
	if err := state.ClearSession(); err != nil {
		t.Fatal(err)
	}

	reopened, err := openState(path)
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := reopened.Load(); id != "w7" {
		t.Errorf("pointer = %q, want w7", id)
	}
	if reopened.Token() != "" {
		t.Errorf("token survived logout")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCorruptStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := openState(path); err == nil {
		t.Error("corrupt state accepted")
	}
}
