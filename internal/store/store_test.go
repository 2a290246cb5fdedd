package store

import (
	"errors"
	"strings"
	"testing"

	"ideaboard/internal/model"
)

var testCatalog = []string{"環境問題の解決策", "AIと人間の共存", "地域活性化のアイデア"}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:", testCatalog)
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestWorkshop(t *testing.T, s *Store, name string) model.Workshop {
	t.Helper()
	ws, err := s.CreateWorkshop(name)
	if err != nil {
		t.Fatalf("createTestWorkshop: %v", err)
	}
	return ws
}

func testDraft(challenge, group string) model.Draft {
	return model.Draft{
		Challenge:   challenge,
		GroupName:   group,
		StudentName: "田中太郎",
		What:        "課題の説明",
		Why:         "重要な理由",
		How:         strings.Repeat("あ", 50),
	}
}

// insertTestSolution activates the challenge if needed and stores a draft.
func insertTestSolution(t *testing.T, s *Store, wsID, challenge, group string) model.Solution {
	t.Helper()
	active, err := s.IsChallengeActive(wsID, challenge)
	if err != nil {
		t.Fatalf("IsChallengeActive: %v", err)
	}
	if !active {
		if err := s.ToggleChallengeActive(wsID, challenge); err != nil {
			t.Fatalf("ToggleChallengeActive: %v", err)
		}
	}
	sol, err := s.InsertSolution(wsID, testDraft(challenge, group))
	if err != nil {
		t.Fatalf("InsertSolution: %v", err)
	}
	return sol
}

func TestCreateWorkshop(t *testing.T) {
	s := newTestStore(t)

	cur, err := s.CurrentWorkshop()
	if err != nil {
		t.Fatalf("CurrentWorkshop: %v", err)
	}
	if cur != nil {
		t.Fatalf("expected no current workshop on a fresh store, got %q", cur.Name)
	}

	ws := createTestWorkshop(t, s, "  春の回  ")
	if ws.Name != "春の回" {
		t.Errorf("expected trimmed name, got %q", ws.Name)
	}
	if ws.ID == "" {
		t.Error("expected a generated ID")
	}
	if ws.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}

	// Creating a workshop makes it current.
	cur, err = s.CurrentWorkshop()
	if err != nil {
		t.Fatalf("CurrentWorkshop: %v", err)
	}
	if cur == nil || cur.ID != ws.ID {
		t.Errorf("expected current workshop %s, got %+v", ws.ID, cur)
	}

	for _, name := range []string{"", "   "} {
		if _, err := s.CreateWorkshop(name); !errors.Is(err, ErrWorkshopNameEmpty) {
			t.Errorf("CreateWorkshop(%q): expected ErrWorkshopNameEmpty, got %v", name, err)
		}
	}
}

func TestSwitchWorkshop(t *testing.T) {
	s := newTestStore(t)
	first := createTestWorkshop(t, s, "first")
	second := createTestWorkshop(t, s, "second")

	cur, err := s.CurrentWorkshop()
	if err != nil {
		t.Fatalf("CurrentWorkshop: %v", err)
	}
	if cur.ID != second.ID {
		t.Fatalf("expected newest workshop to be current, got %q", cur.Name)
	}

	if err := s.SwitchWorkshop(first.ID); err != nil {
		t.Fatalf("SwitchWorkshop: %v", err)
	}
	cur, err = s.CurrentWorkshop()
	if err != nil {
		t.Fatalf("CurrentWorkshop: %v", err)
	}
	if cur.ID != first.ID {
		t.Errorf("expected current workshop %q, got %q", first.Name, cur.Name)
	}

	if err := s.SwitchWorkshop("no-such-id"); !errors.Is(err, ErrWorkshopNotFound) {
		t.Errorf("expected ErrWorkshopNotFound, got %v", err)
	}
}

func TestDeleteWorkshop(t *testing.T) {
	s := newTestStore(t)
	first := createTestWorkshop(t, s, "first")
	second := createTestWorkshop(t, s, "second")

	insertTestSolution(t, s, second.ID, testCatalog[0], "チームA")
	if err := s.AddCustomChallenge(second.ID, "独自の課題"); err != nil {
		t.Fatalf("AddCustomChallenge: %v", err)
	}

	// Deleting the current workshop clears the selection.
	if err := s.DeleteWorkshop(second.ID); err != nil {
		t.Fatalf("DeleteWorkshop: %v", err)
	}
	cur, err := s.CurrentWorkshop()
	if err != nil {
		t.Fatalf("CurrentWorkshop: %v", err)
	}
	if cur != nil {
		t.Errorf("expected no current workshop after deleting it, got %q", cur.Name)
	}

	// The working set went with it.
	solutions, err := s.ListSolutions(second.ID)
	if err != nil {
		t.Fatalf("ListSolutions: %v", err)
	}
	if len(solutions) != 0 {
		t.Errorf("expected no solutions after delete, got %d", len(solutions))
	}
	custom, err := s.CustomChallenges(second.ID)
	if err != nil {
		t.Fatalf("CustomChallenges: %v", err)
	}
	if len(custom) != 0 {
		t.Errorf("expected no custom challenges after delete, got %d", len(custom))
	}

	// Deleting a non-current workshop leaves the selection alone.
	if err := s.SwitchWorkshop(first.ID); err != nil {
		t.Fatalf("SwitchWorkshop: %v", err)
	}
	third := createTestWorkshop(t, s, "third")
	if err := s.SwitchWorkshop(first.ID); err != nil {
		t.Fatalf("SwitchWorkshop: %v", err)
	}
	if err := s.DeleteWorkshop(third.ID); err != nil {
		t.Fatalf("DeleteWorkshop: %v", err)
	}
	cur, err = s.CurrentWorkshop()
	if err != nil {
		t.Fatalf("CurrentWorkshop: %v", err)
	}
	if cur == nil || cur.ID != first.ID {
		t.Errorf("expected current workshop to survive deleting another, got %+v", cur)
	}

	if err := s.DeleteWorkshop("no-such-id"); !errors.Is(err, ErrWorkshopNotFound) {
		t.Errorf("expected ErrWorkshopNotFound, got %v", err)
	}
}

// Workshops own their solutions and challenge state; nothing leaks between
// them and switching back restores everything untouched.
func TestWorkshopIsolation(t *testing.T) {
	s := newTestStore(t)
	a := createTestWorkshop(t, s, "A")
	insertTestSolution(t, s, a.ID, testCatalog[0], "チームA")
	if err := s.AddCustomChallenge(a.ID, "Aだけの課題"); err != nil {
		t.Fatalf("AddCustomChallenge: %v", err)
	}

	b := createTestWorkshop(t, s, "B")
	solutions, err := s.ListSolutions(b.ID)
	if err != nil {
		t.Fatalf("ListSolutions: %v", err)
	}
	if len(solutions) != 0 {
		t.Fatalf("expected fresh workshop to have no solutions, got %d", len(solutions))
	}
	active, err := s.ActiveChallenges(b.ID)
	if err != nil {
		t.Fatalf("ActiveChallenges: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected fresh workshop to have no active challenges, got %v", active)
	}

	if err := s.SwitchWorkshop(a.ID); err != nil {
		t.Fatalf("SwitchWorkshop: %v", err)
	}
	view, err := s.GetWorkshopView(a.ID)
	if err != nil {
		t.Fatalf("GetWorkshopView: %v", err)
	}
	if len(view.Solutions) != 1 {
		t.Errorf("expected 1 solution after switching back, got %d", len(view.Solutions))
	}
	if len(view.ActiveChallenges) != 1 || view.ActiveChallenges[0] != testCatalog[0] {
		t.Errorf("expected active challenges %v, got %v", []string{testCatalog[0]}, view.ActiveChallenges)
	}
	if len(view.CustomChallenges) != 1 || view.CustomChallenges[0] != "Aだけの課題" {
		t.Errorf("expected custom challenges to survive the switch, got %v", view.CustomChallenges)
	}
}

func TestAddCustomChallenge(t *testing.T) {
	s := newTestStore(t)
	ws := createTestWorkshop(t, s, "ws")

	if err := s.AddCustomChallenge(ws.ID, "  新しい課題  "); err != nil {
		t.Fatalf("AddCustomChallenge: %v", err)
	}
	all, err := s.AllChallenges(ws.ID)
	if err != nil {
		t.Fatalf("AllChallenges: %v", err)
	}
	if len(all) != len(testCatalog)+1 {
		t.Fatalf("expected %d challenges, got %d", len(testCatalog)+1, len(all))
	}
	if all[len(all)-1] != "新しい課題" {
		t.Errorf("expected trimmed custom challenge last, got %q", all[len(all)-1])
	}

	// Duplicates against the catalog and against existing customs.
	if err := s.AddCustomChallenge(ws.ID, testCatalog[0]); !errors.Is(err, ErrChallengeExists) {
		t.Errorf("expected ErrChallengeExists for catalog duplicate, got %v", err)
	}
	if err := s.AddCustomChallenge(ws.ID, "新しい課題"); !errors.Is(err, ErrChallengeExists) {
		t.Errorf("expected ErrChallengeExists for custom duplicate, got %v", err)
	}

	for _, text := range []string{"", "   "} {
		if err := s.AddCustomChallenge(ws.ID, text); !errors.Is(err, ErrChallengeEmpty) {
			t.Errorf("AddCustomChallenge(%q): expected ErrChallengeEmpty, got %v", text, err)
		}
	}
}

func TestDeleteCustomChallenge(t *testing.T) {
	s := newTestStore(t)
	ws := createTestWorkshop(t, s, "ws")

	if err := s.AddCustomChallenge(ws.ID, "消える課題"); err != nil {
		t.Fatalf("AddCustomChallenge: %v", err)
	}
	if err := s.ToggleChallengeActive(ws.ID, "消える課題"); err != nil {
		t.Fatalf("ToggleChallengeActive: %v", err)
	}

	if err := s.DeleteCustomChallenge(ws.ID, "消える課題"); err != nil {
		t.Fatalf("DeleteCustomChallenge: %v", err)
	}
	custom, err := s.CustomChallenges(ws.ID)
	if err != nil {
		t.Fatalf("CustomChallenges: %v", err)
	}
	if len(custom) != 0 {
		t.Errorf("expected no custom challenges, got %v", custom)
	}
	// Deletion cascades out of the active set.
	active, err := s.IsChallengeActive(ws.ID, "消える課題")
	if err != nil {
		t.Fatalf("IsChallengeActive: %v", err)
	}
	if active {
		t.Error("expected deleted challenge to leave the active set")
	}

	// Catalog entries cannot be deleted; the call is a no-op.
	if err := s.ToggleChallengeActive(ws.ID, testCatalog[0]); err != nil {
		t.Fatalf("ToggleChallengeActive: %v", err)
	}
	if err := s.DeleteCustomChallenge(ws.ID, testCatalog[0]); err != nil {
		t.Fatalf("DeleteCustomChallenge: %v", err)
	}
	all, err := s.AllChallenges(ws.ID)
	if err != nil {
		t.Fatalf("AllChallenges: %v", err)
	}
	if len(all) != len(testCatalog) {
		t.Errorf("expected catalog to be untouched, got %v", all)
	}
	active, err = s.IsChallengeActive(ws.ID, testCatalog[0])
	if err != nil {
		t.Fatalf("IsChallengeActive: %v", err)
	}
	if !active {
		t.Error("expected catalog challenge to stay active")
	}
}

func TestToggleChallengeActive(t *testing.T) {
	s := newTestStore(t)
	ws := createTestWorkshop(t, s, "ws")

	if err := s.ToggleChallengeActive(ws.ID, testCatalog[1]); err != nil {
		t.Fatalf("ToggleChallengeActive: %v", err)
	}
	active, err := s.IsChallengeActive(ws.ID, testCatalog[1])
	if err != nil {
		t.Fatalf("IsChallengeActive: %v", err)
	}
	if !active {
		t.Error("expected challenge active after first toggle")
	}

	if err := s.ToggleChallengeActive(ws.ID, testCatalog[1]); err != nil {
		t.Fatalf("ToggleChallengeActive: %v", err)
	}
	active, err = s.IsChallengeActive(ws.ID, testCatalog[1])
	if err != nil {
		t.Fatalf("IsChallengeActive: %v", err)
	}
	if active {
		t.Error("expected challenge inactive after second toggle")
	}

	if err := s.ToggleChallengeActive(ws.ID, "存在しない課題"); !errors.Is(err, ErrChallengeUnknown) {
		t.Errorf("expected ErrChallengeUnknown, got %v", err)
	}
}

func TestInsertSolution(t *testing.T) {
	s := newTestStore(t)
	ws := createTestWorkshop(t, s, "ws")

	// The chosen challenge must be active at insertion time.
	if _, err := s.InsertSolution(ws.ID, testDraft(testCatalog[0], "チームA")); !errors.Is(err, ErrChallengeInactive) {
		t.Fatalf("expected ErrChallengeInactive, got %v", err)
	}

	if err := s.ToggleChallengeActive(ws.ID, testCatalog[0]); err != nil {
		t.Fatalf("ToggleChallengeActive: %v", err)
	}
	sol, err := s.InsertSolution(ws.ID, testDraft(testCatalog[0], "チームA"))
	if err != nil {
		t.Fatalf("InsertSolution: %v", err)
	}
	if sol.ID == "" {
		t.Error("expected a generated solution ID")
	}
	if sol.CreatedAt.IsZero() {
		t.Error("expected a submission timestamp")
	}

	solutions, err := s.ListSolutions(ws.ID)
	if err != nil {
		t.Fatalf("ListSolutions: %v", err)
	}
	if len(solutions) != 1 {
		t.Fatalf("expected 1 solution, got %d", len(solutions))
	}
	got := solutions[0]
	if got.Challenge != testCatalog[0] || got.GroupName != "チームA" || got.StudentName != "田中太郎" {
		t.Errorf("unexpected solution fields: %+v", got)
	}
	if got.What != "課題の説明" || got.Why != "重要な理由" || got.How != strings.Repeat("あ", 50) {
		t.Errorf("expected the three answer fields to round-trip, got %+v", got)
	}

	if _, err := s.InsertSolution("no-such-id", testDraft(testCatalog[0], "チームA")); !errors.Is(err, ErrWorkshopNotFound) {
		t.Errorf("expected ErrWorkshopNotFound, got %v", err)
	}
}

func TestSolutionQueries(t *testing.T) {
	s := newTestStore(t)
	ws := createTestWorkshop(t, s, "ws")

	insertTestSolution(t, s, ws.ID, testCatalog[1], "チームB")
	insertTestSolution(t, s, ws.ID, testCatalog[0], "チームA")
	insertTestSolution(t, s, ws.ID, testCatalog[1], "チームA")

	count, err := s.SolutionCount(ws.ID)
	if err != nil {
		t.Fatalf("SolutionCount: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 solutions, got %d", count)
	}

	// Distinct values come back in first-appearance order.
	challenges, err := s.UniqueChallenges(ws.ID)
	if err != nil {
		t.Fatalf("UniqueChallenges: %v", err)
	}
	want := []string{testCatalog[1], testCatalog[0]}
	if len(challenges) != 2 || challenges[0] != want[0] || challenges[1] != want[1] {
		t.Errorf("expected challenges %v, got %v", want, challenges)
	}

	groups, err := s.UniqueGroups(ws.ID)
	if err != nil {
		t.Fatalf("UniqueGroups: %v", err)
	}
	if len(groups) != 2 || groups[0] != "チームB" || groups[1] != "チームA" {
		t.Errorf("expected groups in first-appearance order, got %v", groups)
	}
}

func TestAdminSessions(t *testing.T) {
	s := newTestStore(t)

	token, err := s.CreateAdminSession()
	if err != nil {
		t.Fatalf("CreateAdminSession: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	ok, err := s.ValidAdminSession(token)
	if err != nil {
		t.Fatalf("ValidAdminSession: %v", err)
	}
	if !ok {
		t.Error("expected a fresh session to be valid")
	}

	ok, err = s.ValidAdminSession("bogus")
	if err != nil {
		t.Fatalf("ValidAdminSession: %v", err)
	}
	if ok {
		t.Error("expected an unknown token to be invalid")
	}

	if err := s.DeleteAdminSession(token); err != nil {
		t.Fatalf("DeleteAdminSession: %v", err)
	}
	ok, err = s.ValidAdminSession(token)
	if err != nil {
		t.Fatalf("ValidAdminSession: %v", err)
	}
	if ok {
		t.Error("expected a deleted session to be invalid")
	}
}

func TestExportAll(t *testing.T) {
	s := newTestStore(t)

	a := createTestWorkshop(t, s, "A")
	insertTestSolution(t, s, a.ID, testCatalog[0], "チームA")
	insertTestSolution(t, s, a.ID, testCatalog[1], "チームB")
	b := createTestWorkshop(t, s, "B")
	insertTestSolution(t, s, b.ID, testCatalog[0], "チームC")

	rows, err := s.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Rows are grouped by workshop in creation order.
	wantNames := []string{"A", "A", "B"}
	for i, row := range rows {
		if row.WorkshopName != wantNames[i] {
			t.Errorf("row %d: expected workshop %q, got %q", i, wantNames[i], row.WorkshopName)
		}
	}
	if rows[2].Solution.GroupName != "チームC" {
		t.Errorf("expected last row from workshop B, got %+v", rows[2].Solution)
	}
}
