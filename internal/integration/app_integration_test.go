package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	appHTTP "taskboard/internal/http"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// End-to-end tests over the real router and a real database. They run
// only when DATABASE_URL is set.

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func setup(t *testing.T) (*httptest.Server, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	if _, err := db.Exec(context.Background(),
		`TRUNCATE users, tasks, categories RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob(filepath.Join("..", "..", "templates", "*.html"))

	sessions := service.NewSessionManager("integration-secret")
	cfg := &config.Config{AuthRateLimit: 1000, AuthRateWindow: 60}
	appHTTP.RegisterRoutes(r, db, sessions, cfg, "test")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

// newBrowser returns a redirect-following client with a cookie jar, i.e.
// what a real browser session looks like to the server.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) string {
	t.Helper()
	res, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func register(t *testing.T, client *http.Client, base, username, password string) string {
	t.Helper()
	return postForm(t, client, base+"/register", url.Values{
		"username": {username},
		"password": {password},
	})
}

func login(t *testing.T, client *http.Client, base, username, password string) string {
	t.Helper()
	return postForm(t, client, base+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

func countTasks(t *testing.T, db *pgxpool.Pool) int {
	t.Helper()
	var n int
	if err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	return n
}

func TestRegisterDuplicateUsername(t *testing.T) {
	srv, _ := setup(t)

	first := newBrowser(t)
	body := register(t, first, srv.URL, "Bob", "pw-one")
	if !strings.Contains(body, "Registration succesfull") {
		t.Fatalf("expected registration success page, got: %s", body)
	}

	// same username after normalization, different case
	second := newBrowser(t)
	body = register(t, second, srv.URL, "BOB", "pw-two")
	if !strings.Contains(body, "Username already exists") {
		t.Fatalf("expected duplicate username message, got: %s", body)
	}

	// first account is untouched: original password still logs in
	third := newBrowser(t)
	body = login(t, third, srv.URL, "bob", "pw-one")
	if !strings.Contains(body, "Welcome, bob") {
		t.Fatalf("expected original credentials to still work, got: %s", body)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv, _ := setup(t)

	register(t, newBrowser(t), srv.URL, "carol", "right-password")

	wrongPass := login(t, newBrowser(t), srv.URL, "carol", "wrong-password")
	noUser := login(t, newBrowser(t), srv.URL, "nobody", "whatever")

	if !strings.Contains(wrongPass, "Username and/or password are incorrect") {
		t.Fatalf("expected generic failure message, got: %s", wrongPass)
	}
	if wrongPass != noUser {
		t.Fatalf("wrong-password and unknown-user responses differ:\n%s\n---\n%s", wrongPass, noUser)
	}
}

func TestAddTaskWithoutSessionIsSkipped(t *testing.T) {
	srv, db := setup(t)

	before := countTasks(t, db)

	body := postForm(t, newBrowser(t), srv.URL+"/add_task", url.Values{
		"category_name":    {"Home"},
		"task_name":        {"sneaky"},
		"task_description": {"should not be stored"},
		"due_date":         {"tomorrow"},
	})

	if !strings.Contains(body, "Insert failed") {
		t.Fatalf("expected insert failure message, got: %s", body)
	}
	if got := countTasks(t, db); got != before {
		t.Fatalf("task list changed: %d -> %d", before, got)
	}
}

func TestAddTaskUrgencyRoundTrip(t *testing.T) {
	srv, db := setup(t)
	tasks := repository.NewTaskRepository(db)

	browser := newBrowser(t)
	register(t, browser, srv.URL, "dave", "pw")

	body := postForm(t, browser, srv.URL+"/add_task", url.Values{
		"category_name":    {"Work"},
		"task_name":        {"urgent one"},
		"task_description": {"with checkbox"},
		"is_urgent":        {"on"},
		"due_date":         {"2026-09-01"},
	})
	if !strings.Contains(body, "Insert succesfull") {
		t.Fatalf("expected insert success, got: %s", body)
	}

	postForm(t, browser, srv.URL+"/add_task", url.Values{
		"category_name":    {"Work"},
		"task_name":        {"calm one"},
		"task_description": {"checkbox absent"},
		"due_date":         {"2026-09-02"},
	})

	all, err := tasks.List(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(all))
	}
	if all[0].IsUrgent != "on" {
		t.Fatalf("expected literal \"on\", got %q", all[0].IsUrgent)
	}
	if all[1].IsUrgent != "off" {
		t.Fatalf("expected literal \"off\", got %q", all[1].IsUrgent)
	}
	if all[0].CreatedBy != "dave" {
		t.Fatalf("expected created_by from session, got %q", all[0].CreatedBy)
	}
}

func TestEditTaskFullReplace(t *testing.T) {
	srv, db := setup(t)
	tasks := repository.NewTaskRepository(db)

	seed := &domain.Task{
		CategoryName:    "Old",
		TaskName:        "old name",
		TaskDescription: "old description",
		IsUrgent:        "on",
		DueDate:         "yesterday",
		CreatedBy:       "someone",
	}
	if err := tasks.Create(context.Background(), seed); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	id := strconv.FormatInt(seed.ID, 10)

	browser := newBrowser(t)
	register(t, browser, srv.URL, "erin", "pw")

	body := postForm(t, browser, srv.URL+"/edit_task/"+id, url.Values{
		"category_name":    {"New"},
		"task_name":        {"new name"},
		"task_description": {"new description"},
		"due_date":         {"tomorrow"},
	})
	if !strings.Contains(body, "Update succesfull") {
		t.Fatalf("expected update success, got: %s", body)
	}

	got, err := tasks.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.CategoryName != "New" || got.TaskName != "new name" ||
		got.TaskDescription != "new description" || got.DueDate != "tomorrow" {
		t.Fatalf("expected full replace, got %+v", got)
	}
	if got.IsUrgent != "off" {
		t.Fatalf("absent checkbox must replace urgency with \"off\", got %q", got.IsUrgent)
	}
	if got.CreatedBy != "erin" {
		t.Fatalf("created_by must come from the editing session, got %q", got.CreatedBy)
	}
}

func TestReplaceMissingIDIsNoOp(t *testing.T) {
	_, db := setup(t)
	tasks := repository.NewTaskRepository(db)
	categories := repository.NewCategoryRepository(db)
	ctx := context.Background()

	seed := &domain.Task{TaskName: "keep me", TaskDescription: "untouched", IsUrgent: "off", CreatedBy: "grace"}
	if err := tasks.Create(ctx, seed); err != nil {
		t.Fatalf("seed task: %v", err)
	}

	replacement := &domain.Task{TaskName: "impostor", IsUrgent: "on", CreatedBy: "mallory"}
	for _, id := range []string{"999999", "not-an-id"} {
		if err := tasks.Replace(ctx, id, replacement); err != nil {
			t.Fatalf("replace task id=%q: expected silent no-op, got %v", id, err)
		}
	}
	if got := countTasks(t, db); got != 1 {
		t.Fatalf("expected replace to store nothing, have %d tasks", got)
	}
	got, err := tasks.GetByID(ctx, strconv.FormatInt(seed.ID, 10))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.TaskName != "keep me" || got.CreatedBy != "grace" {
		t.Fatalf("existing task was touched: %+v", got)
	}

	cat := &domain.Category{CategoryName: "Errands"}
	if err := categories.Create(ctx, cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	for _, id := range []string{"999999", "garbage"} {
		if err := categories.Replace(ctx, id, &domain.Category{CategoryName: "Renamed"}); err != nil {
			t.Fatalf("replace category id=%q: expected silent no-op, got %v", id, err)
		}
	}
	gotCat, err := categories.GetByID(ctx, strconv.FormatInt(cat.ID, 10))
	if err != nil {
		t.Fatalf("read back category: %v", err)
	}
	if gotCat.CategoryName != "Errands" {
		t.Fatalf("existing category was touched: %+v", gotCat)
	}
}

func TestDeleteCategoryLeavesTasks(t *testing.T) {
	srv, db := setup(t)
	tasks := repository.NewTaskRepository(db)
	categories := repository.NewCategoryRepository(db)

	cat := &domain.Category{CategoryName: "Chores"}
	if err := categories.Create(context.Background(), cat); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	task := &domain.Task{CategoryName: "Chores", TaskName: "dishes", IsUrgent: "off"}
	if err := tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}

	catID := strconv.FormatInt(cat.ID, 10)
	res, err := newBrowser(t).Get(srv.URL + "/delete_category/" + catID)
	if err != nil {
		t.Fatalf("delete category: %v", err)
	}
	res.Body.Close()

	if _, err := categories.GetByID(context.Background(), catID); err == nil {
		t.Fatalf("expected category to be gone")
	}

	got, err := tasks.GetByID(context.Background(), strconv.FormatInt(task.ID, 10))
	if err != nil {
		t.Fatalf("task must survive category deletion: %v", err)
	}
	if got.CategoryName != "Chores" {
		t.Fatalf("expected dangling category name to remain, got %q", got.CategoryName)
	}
}

func TestDeleteTaskIsUnconditional(t *testing.T) {
	srv, db := setup(t)
	tasks := repository.NewTaskRepository(db)

	task := &domain.Task{TaskName: "doomed", IsUrgent: "off", CreatedBy: "someone"}
	if err := tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	id := strconv.FormatInt(task.ID, 10)

	// no session, no ownership check
	res, err := newBrowser(t).Get(srv.URL + "/delete_task/" + id)
	if err != nil {
		t.Fatalf("delete task: %v", err)
	}
	res.Body.Close()

	if _, err := tasks.GetByID(context.Background(), id); err == nil {
		t.Fatalf("expected task to be deleted")
	}

	// deleting again is a silent no-op
	res, err = newBrowser(t).Get(srv.URL + "/delete_task/" + id)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected redirect chain to end in 200, got %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestSearch(t *testing.T) {
	srv, db := setup(t)
	tasks := repository.NewTaskRepository(db)

	for _, seed := range []*domain.Task{
		{TaskName: "water the plants", TaskDescription: "garden duty", IsUrgent: "off"},
		{TaskName: "file taxes", TaskDescription: "annual paperwork", IsUrgent: "on"},
	} {
		if err := tasks.Create(context.Background(), seed); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}

	body := postForm(t, newBrowser(t), srv.URL+"/search", url.Values{"query": {"plants"}})
	if !strings.Contains(body, "water the plants") {
		t.Fatalf("expected matching task in results, got: %s", body)
	}
	if strings.Contains(body, "file taxes") {
		t.Fatalf("unexpected non-matching task in results")
	}

	// no match: empty result, not an error
	got, err := tasks.Search(context.Background(), "zzzqqq")
	if err != nil {
		t.Fatalf("search with no matches errored: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d tasks", len(got))
	}
}

func TestProfileRedirectsWithoutSession(t *testing.T) {
	srv, _ := setup(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	res, err := client.Get(srv.URL + "/profile/anyone")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestProfileRendersSessionUserNotPathUser(t *testing.T) {
	srv, _ := setup(t)

	browser := newBrowser(t)
	register(t, browser, srv.URL, "frank", "pw")

	// path names a different user; the rendered identity is the session's
	res, err := browser.Get(srv.URL + "/profile/other_person")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := string(b)

	if !strings.Contains(body, "frank") {
		t.Fatalf("expected session user in profile, got: %s", body)
	}
	if strings.Contains(body, "other_person") {
		t.Fatalf("path username must be ignored, got: %s", body)
	}
}
