package portal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alerta-nampula/alerta/internal/db"
	"github.com/alerta-nampula/alerta/internal/models"
	"github.com/alerta-nampula/alerta/internal/store"
	"github.com/alerta-nampula/alerta/internal/ussd"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	st, err := store.New(store.Opts{DB: gdb})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	it, err := ussd.New(ussd.Opts{Store: st, Site: ussd.SiteInfo{
		Name:          "Alerta Nampula",
		EmergencyLine: "+258 87 441 3363",
		MedicalLine:   "117",
	}})
	if err != nil {
		t.Fatalf("new interpreter: %v", err)
	}
	return NewRouter(st, it), st
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doJSON(router *gin.Engine, method, path string, body any, user, pass string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- USSD gateway tests ---

func TestUSSD_MissingSessionFields(t *testing.T) {
	router, st := newTestRouter(t)

	for _, form := range []url.Values{
		{},
		{"sessionId": {"s1"}},
		{"phoneNumber": {"258840000001"}},
	} {
		w := postForm(router, "/ussd", form)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
		if !strings.HasPrefix(w.Body.String(), "END ") {
			t.Errorf("body = %q, want END protocol error", w.Body.String())
		}
	}

	// A protocol error must leave no trace in the store.
	reqs, _ := st.HelpRequests("")
	if len(reqs) != 0 {
		t.Error("protocol error touched the store")
	}
}

func TestUSSD_EmptyTextIsRootMenu(t *testing.T) {
	router, _ := newTestRouter(t)
	w := postForm(router, "/ussd", url.Values{
		"sessionId":   {"s1"},
		"phoneNumber": {"258840000001"},
		"text":        {""},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "CON ") || !strings.Contains(body, "1. Alertas") {
		t.Errorf("body = %q, want CON root menu", body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q, want text/plain", ct)
	}
}

func TestUSSD_WaterFlowPersists(t *testing.T) {
	router, st := newTestRouter(t)
	w := postForm(router, "/ussd", url.Values{
		"sessionId":   {"s1"},
		"phoneNumber": {"258840000001"},
		"text":        {"3*2*5"},
	})
	if !strings.HasPrefix(w.Body.String(), "END ") {
		t.Fatalf("body = %q, want END confirmation", w.Body.String())
	}

	reqs, err := st.HelpRequests("")
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Category != models.HelpWater {
		t.Fatalf("requests = %+v, want one water request", reqs)
	}
	if !strings.Contains(reqs[0].Description, "5") {
		t.Errorf("description = %q", reqs[0].Description)
	}
}

// --- public API tests ---

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/ping", nil, "", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestPublicAlerts_OnlyActive(t *testing.T) {
	router, st := newTestRouter(t)
	st.CreateAlert(&models.Alert{Title: "Cheia", Category: models.AlertUrgent, Body: "x", Active: true})
	hidden := &models.Alert{Title: "Antigo", Category: models.AlertInformational, Body: "x", Active: true}
	st.CreateAlert(hidden)
	st.SetAlertActive(hidden.ID, false)

	w := doJSON(router, http.MethodGet, "/api/alerts", nil, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Cheia") || strings.Contains(body, "Antigo") {
		t.Errorf("body = %s", body)
	}
}

func TestPublicStats(t *testing.T) {
	router, st := newTestRouter(t)
	st.CreateFamily(&models.DisplacedFamily{Neighborhood: "Muahivire", People: 6, Situation: "desalojada", Shelter: "Escola"})

	w := doJSON(router, http.MethodGet, "/api/stats", nil, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"displaced_people":6`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCreateSupportOffer(t *testing.T) {
	router, st := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/support", map[string]string{
		"kind": "mantas", "quantity": "20", "contact": "258840000001",
	}, "", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	offers, _ := st.SupportOffers()
	if len(offers) != 1 || offers[0].Status != models.OfferPending {
		t.Fatalf("offers = %+v", offers)
	}

	w = doJSON(router, http.MethodPost, "/api/support", map[string]string{"quantity": "20"}, "", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing kind: status = %d, want 400", w.Code)
	}
}

func TestCreateSubscription_Conflict(t *testing.T) {
	router, _ := newTestRouter(t)
	payload := map[string]string{"name": "Ana", "phone": "258840000001"}

	if w := doJSON(router, http.MethodPost, "/api/subscriptions", payload, "", ""); w.Code != http.StatusCreated {
		t.Fatalf("first: status = %d", w.Code)
	}
	if w := doJSON(router, http.MethodPost, "/api/subscriptions", payload, "", ""); w.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", w.Code)
	}
}

// --- admin API tests ---

func seedAdmin(t *testing.T, st *store.Store, level models.AdminLevel) *models.AdminUser {
	t.Helper()
	admin, err := st.CreateAdmin("Staff", string(level)+"@example.org", "segredo123", level)
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func TestAdmin_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/admin/api/alerts", nil, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/admin/api/alerts", nil, "nada@example.org", "errada")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad credentials: status = %d, want 401", w.Code)
	}
}

func TestAdmin_AlertLifecycle(t *testing.T) {
	router, st := newTestRouter(t)
	admin := seedAdmin(t, st, models.AdminRegular)

	w := doJSON(router, http.MethodPost, "/admin/api/alerts", map[string]string{
		"title": "Ciclone", "category": "urgent", "body": "aproxima-se da costa",
	}, admin.Email, "segredo123")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}

	alerts, _ := st.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	id := alerts[0].ID

	w = doJSON(router, http.MethodPut, "/admin/api/alerts/1/active", map[string]any{"active": false}, admin.Email, "segredo123")
	if w.Code != http.StatusOK {
		t.Fatalf("deactivate: status = %d", w.Code)
	}
	active, _ := st.ActiveAlerts(0)
	if len(active) != 0 {
		t.Error("alert still active after toggle")
	}

	w = doJSON(router, http.MethodDelete, "/admin/api/alerts/1", nil, admin.Email, "segredo123")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if err := st.DeleteAlert(id); err == nil {
		t.Error("alert still present after delete")
	}
}

func TestAdmin_HelpStatusUpdate(t *testing.T) {
	router, st := newTestRouter(t)
	admin := seedAdmin(t, st, models.AdminRegular)
	req := &models.HelpRequest{Phone: "1", Category: models.HelpWater}
	st.CreateHelpRequest(req)

	w := doJSON(router, http.MethodPut, "/admin/api/help/1/status", map[string]string{"status": "attending"}, admin.Email, "segredo123")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	reqs, _ := st.HelpRequests(models.HelpAttending)
	if len(reqs) != 1 {
		t.Errorf("attending = %d, want 1", len(reqs))
	}
}

func TestAdmin_SettingsRequireMaster(t *testing.T) {
	router, st := newTestRouter(t)
	regular := seedAdmin(t, st, models.AdminRegular)
	master := seedAdmin(t, st, models.AdminMaster)

	w := doJSON(router, http.MethodGet, "/admin/api/settings", nil, regular.Email, "segredo123")
	if w.Code != http.StatusForbidden {
		t.Errorf("regular admin: status = %d, want 403", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/admin/api/settings", nil, master.Email, "segredo123")
	if w.Code != http.StatusOK {
		t.Errorf("master admin: status = %d, want 200", w.Code)
	}
}

func TestAdmin_SelfDeleteRejected(t *testing.T) {
	router, st := newTestRouter(t)
	master := seedAdmin(t, st, models.AdminMaster)

	w := doJSON(router, http.MethodDelete, "/admin/api/admins/1", nil, master.Email, "segredo123")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	admins, _ := st.AdminUsers()
	if len(admins) != 1 {
		t.Error("self delete removed the account")
	}
}

func TestAdmin_ListHidesPasswordHash(t *testing.T) {
	router, st := newTestRouter(t)
	master := seedAdmin(t, st, models.AdminMaster)

	w := doJSON(router, http.MethodGet, "/admin/api/admins", nil, master.Email, "segredo123")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "$2a$") {
		t.Error("response leaks bcrypt hashes")
	}
}
