package routes_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/bootstrap"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/testutil"
)

const cookieName = "gradebook_session"

func init() {
	gin.SetMode(gin.TestMode)
}

type app struct {
	server *httptest.Server
	db     *db.Database
	repos  *repositories.Repositories
}

func newApp(t *testing.T) *app {
	t.Helper()
	cfg := testutil.Config(t)
	database := testutil.NewDatabase(t, cfg)

	deps, err := bootstrap.BuildDependencies(cfg, database, zerolog.Nop())
	require.NoError(t, err)
	router, err := bootstrap.SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &app{server: server, db: database, repos: deps.Repos}
}

// browser keeps cookies across requests and does not follow redirects
type browser struct {
	t      *testing.T
	app    *app
	client *http.Client
}

func (a *app) browser(t *testing.T) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:   t,
		app: a,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.app.server.URL+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.app.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) session() string {
	u, _ := url.Parse(b.app.server.URL)
	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == cookieName {
			return c.Value
		}
	}
	return ""
}

func credentials(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func (a *app) studentID(t *testing.T, username string) int64 {
	t.Helper()
	s, err := a.repos.StudentRepository.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return s.ID
}

func TestIndexAndRegistrationPages(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)

	for _, path := range []string{"/", "/register_student_page", "/register_admin_page"} {
		resp, body := b.get(path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, body, "<form", path)
	}
}

func TestLogin_StudentAndWrongPassword(t *testing.T) {
	a := newApp(t)

	resp, _ := a.browser(t).post("/register_student", credentials("alice", "pw"))
	assertRedirect(t, resp, "/dashboard_student")

	b := a.browser(t)
	resp, _ = b.post("/login", credentials("alice", "pw"))
	assertRedirect(t, resp, "/dashboard_student")
	require.NotEmpty(t, b.session())

	resp, body := b.get("/dashboard_student")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice")

	// a student session does not open admin pages
	resp, _ = b.get("/dashboard_admin")
	assertRedirect(t, resp, "/")

	stranger := a.browser(t)
	resp, body = stranger.post("/login", credentials("alice", "nope"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Empty(t, stranger.session())
}

func TestLogin_MissingOrOversizedCredentials(t *testing.T) {
	a := newApp(t)
	a.browser(t).post("/register_student", credentials("alice", "pw"))

	for _, form := range []url.Values{
		credentials("alice", ""),
		{"username": {"alice"}},
		credentials("", "pw"),
		credentials(strings.Repeat("a", 51), "pw"),
	} {
		b := a.browser(t)
		resp, body := b.post("/login", form)
		assert.Equal(t, http.StatusOK, resp.StatusCode, form.Encode())
		assert.Contains(t, body, "Invalid username or password", form.Encode())
		assert.Empty(t, b.session())
	}

	// surrounding spaces are dropped on registration, so they are on login too
	b := a.browser(t)
	resp, _ := b.post("/login", credentials(" alice ", "pw"))
	assertRedirect(t, resp, "/dashboard_student")
}

func TestLogin_Admin(t *testing.T) {
	a := newApp(t)
	resp, _ := a.browser(t).post("/register_admin", credentials("root", "pw"))
	assertRedirect(t, resp, "/dashboard_admin")

	b := a.browser(t)
	resp, _ = b.post("/login", credentials("root", "pw"))
	assertRedirect(t, resp, "/dashboard_admin")

	resp, _ = b.get("/dashboard_admin")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = b.get("/dashboard_student")
	assertRedirect(t, resp, "/")
}

func TestRegister_DuplicateKeepsSessionAndRows(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)

	resp, _ := b.post("/register_student", credentials("alice", "pw"))
	assertRedirect(t, resp, "/dashboard_student")
	before := b.session()
	require.NotEmpty(t, before)

	resp, body := b.post("/register_student", credentials("alice", "other"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Student account already exists", body)

	resp, body = b.post("/register_admin", credentials("alice", "other"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Admin account already exists", body)

	assert.Equal(t, before, b.session())
	assert.Equal(t, 1, testutil.CountRows(t, a.db, "students"))
	assert.Equal(t, 0, testutil.CountRows(t, a.db, "admins"))

	resp, body = b.get("/dashboard_student")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice")
}

func TestRegister_MissingFields(t *testing.T) {
	a := newApp(t)

	resp, body := a.browser(t).post("/register_student", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "password is required")
	assert.Equal(t, 0, testutil.CountRows(t, a.db, "students"))
}

func TestSubmitLeave_RequiresStudentSession(t *testing.T) {
	a := newApp(t)
	leave := url.Values{"leave_date": {"2024-05-01"}, "leave_reason": {"trip"}}

	resp, _ := a.browser(t).post("/submit_leave", leave)
	assertRedirect(t, resp, "/")

	admin := a.browser(t)
	admin.post("/register_admin", credentials("root", "pw"))
	resp, _ = admin.post("/submit_leave", leave)
	assertRedirect(t, resp, "/")

	assert.Equal(t, 0, testutil.CountRows(t, a.db, "leaves"))

	student := a.browser(t)
	student.post("/register_student", credentials("alice", "pw"))
	resp, _ = student.post("/submit_leave", leave)
	assertRedirect(t, resp, "/dashboard_student")
	assert.Equal(t, 1, testutil.CountRows(t, a.db, "leaves"))

	_, body := student.get("/dashboard_student")
	assert.Contains(t, body, "<td>trip</td><td>pending</td>")
}

func TestApproveLeave(t *testing.T) {
	a := newApp(t)
	student := a.browser(t)
	student.post("/register_student", credentials("alice", "pw"))
	student.post("/submit_leave", url.Values{"leave_date": {"Friday"}, "leave_reason": {"dentist"}})

	leaves, err := a.repos.LeaveRepository.ListByStatus(context.Background(), models.LeaveStatusPending)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	id := leaves[0].ID

	admin := a.browser(t)
	admin.post("/register_admin", credentials("root", "pw"))

	for _, unknown := range []string{fmt.Sprint(id + 10), "abc"} {
		resp, _ := admin.post("/approve_leave", url.Values{"leave_id": {unknown}})
		assertRedirect(t, resp, "/leave_approval")
	}
	got, err := a.repos.LeaveRepository.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusPending, got.Status)

	for i := 0; i < 2; i++ {
		resp, _ := admin.post("/approve_leave", url.Values{"leave_id": {fmt.Sprint(id)}})
		assertRedirect(t, resp, "/leave_approval")
	}
	got, err = a.repos.LeaveRepository.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveStatusApproved, got.Status)
	assert.Equal(t, 1, testutil.CountRows(t, a.db, "leaves"))

	resp, body := admin.get("/leave_approval")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "dentist")

	// students cannot approve
	resp, _ = student.post("/approve_leave", url.Values{"leave_id": {fmt.Sprint(id)}})
	assertRedirect(t, resp, "/")
}

func TestInputGrades_Upsert(t *testing.T) {
	a := newApp(t)
	admin := a.browser(t)
	admin.post("/register_admin", credentials("root", "pw"))
	admin.post("/add_student_account", credentials("alice", "pw"))
	field := fmt.Sprintf("%d_math", a.studentID(t, "alice"))

	resp, body := admin.get("/input_grades")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="`+field+`"`)

	resp, _ = admin.post("/input_grades", url.Values{field: {"90"}})
	assertRedirect(t, resp, "/dashboard_admin")
	assert.Equal(t, 1, testutil.CountRows(t, a.db, "grades"))

	resp, _ = admin.post("/input_grades", url.Values{field: {"75"}})
	assertRedirect(t, resp, "/dashboard_admin")
	assert.Equal(t, 1, testutil.CountRows(t, a.db, "grades"))

	grades, err := a.repos.GradeRepository.ListByStudent(context.Background(), a.studentID(t, "alice"))
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 75, *grades[0].Score)

	resp, _ = admin.post("/input_grades", url.Values{field: {"ninety"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 75, *mustGrades(t, a, "alice")[0].Score)
}

func mustGrades(t *testing.T, a *app, username string) []models.Grade {
	t.Helper()
	grades, err := a.repos.GradeRepository.ListByStudent(context.Background(), a.studentID(t, username))
	require.NoError(t, err)
	return grades
}

func TestAddSubject(t *testing.T) {
	a := newApp(t)
	admin := a.browser(t)
	admin.post("/register_admin", credentials("root", "pw"))
	admin.post("/add_student_account", credentials("alice", "pw"))
	admin.post("/add_student_account", credentials("bob", "pw"))

	resp, _ := admin.post("/add_subject", url.Values{"subject_name": {"History"}})
	assertRedirect(t, resp, "/dashboard_admin")
	assert.Equal(t, 2, testutil.CountRows(t, a.db, "grades"))

	resp, body := admin.post("/add_subject", url.Values{"subject_name": {"History"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Subject already exists", body)
	assert.Equal(t, 2, testutil.CountRows(t, a.db, "grades"))

	_, body = admin.get("/input_grades")
	assert.Contains(t, body, "<th>History</th>")
}

func TestAddStudentAccount_KeepsAdminSession(t *testing.T) {
	a := newApp(t)
	admin := a.browser(t)
	admin.post("/register_admin", credentials("root", "pw"))
	before := admin.session()

	resp, _ := admin.get("/add_student_page")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = admin.post("/add_student_account", credentials("alice", "pw"))
	assertRedirect(t, resp, "/dashboard_admin")
	assert.Equal(t, before, admin.session())

	resp, body := admin.post("/add_student_account", credentials("alice", "pw"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Student account already exists", body)

	resp, body = admin.get("/registered_students")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "alice")
}

func TestLogoutAndInvalidCookie(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)
	b.post("/register_student", credentials("alice", "pw"))

	resp, _ := b.get("/logout")
	assertRedirect(t, resp, "/")
	assert.Empty(t, b.session())

	resp, _ = b.get("/dashboard_student")
	assertRedirect(t, resp, "/")

	forged := a.browser(t)
	u, _ := url.Parse(a.server.URL)
	forged.client.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: "not-a-token", Path: "/"}})
	resp, _ = forged.get("/dashboard_student")
	assertRedirect(t, resp, "/")
	assert.Empty(t, forged.session())
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)
	b := a.browser(t)

	resp, body := b.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = b.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "gradebook_http_requests_total")
}

func TestEndToEnd_AdminGradesStudentSeesGrade(t *testing.T) {
	a := newApp(t)

	admin := a.browser(t)
	resp, _ := admin.post("/register_admin", credentials("root", "pw"))
	assertRedirect(t, resp, "/dashboard_admin")

	resp, _ = admin.post("/add_student_account", credentials("alice", "pw"))
	assertRedirect(t, resp, "/dashboard_admin")

	field := fmt.Sprintf("%d_math", a.studentID(t, "alice"))
	resp, _ = admin.post("/input_grades", url.Values{field: {"90"}})
	assertRedirect(t, resp, "/dashboard_admin")

	alice := a.browser(t)
	resp, _ = alice.post("/login", credentials("alice", "pw"))
	assertRedirect(t, resp, "/dashboard_student")

	resp, body := alice.get("/dashboard_student")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, strings.Count(body, "<td>Math</td>"))
	assert.Contains(t, body, "<tr><td>Math</td><td>90</td></tr>")

	grades := mustGrades(t, a, "alice")
	require.Len(t, grades, 1)
	assert.Equal(t, models.SubjectMath, grades[0].Subject)
	assert.Equal(t, 90, *grades[0].Score)
}
