// Package remotetest runs an in-memory stand-in for the OneResume API so
// packages can be tested against real HTTP round trips.
package remotetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// Server keeps profiles, users and generated resumes in memory. Stored
// entities are plain JSON objects; ids are assigned by the server.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    int
	seq      int
	users    map[string]map[string]any
	profiles map[string]map[string]any
	byUser   map[string]string
	resumes  []map[string]any
	analyses map[string]map[string]any
	failures []failure
	requests []string
}

type failure struct {
	method string
	prefix string
	status int
	body   string
}

var collections = map[string]string{
	"education":         "education",
	"skills":            "skills",
	"experience":        "experience",
	"projects":          "projects",
	"certifications":    "certifications",
	"achievements":      "achievements",
	"external-profiles": "external_profiles",
}

func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		users:    map[string]map[string]any{},
		profiles: map[string]map[string]any{},
		byUser:   map[string]string{},
		analyses: map[string]map[string]any{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Calls is the number of requests received so far.
func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Requests lists "METHOD path" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Fail makes every request matching method and path prefix answer with
// status and body until ClearFailures.
func (s *Server) Fail(method, prefix string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, prefix: prefix, status: status, body: body})
}

func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = nil
}

// SeedProfile creates an empty profile for userID and returns its id.
func (s *Server) SeedProfile(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createProfile(userID)["id"].(string)
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Server) createProfile(userID string) map[string]any {
	p := map[string]any{
		"id":         s.nextID("p"),
		"user_id":    userID,
		"created_at": time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC).Format("2006-01-02T15:04:05"),
	}
	for _, field := range collections {
		p[field] = []any{}
	}
	s.profiles[p["id"].(string)] = p
	s.byUser[userID] = p["id"].(string)
	return p
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)

	for _, f := range s.failures {
		if f.method == r.Method && strings.HasPrefix(r.URL.Path, f.prefix) {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}
	}

	var body map[string]any
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				http.Error(w, `{"detail":"bad json"}`, http.StatusUnprocessableEntity)
				return
			}
		}
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/"), "/")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	case parts[0] == "users":
		s.serveUsers(w, r, parts[1:], body)
	case parts[0] == "profiles":
		s.serveProfiles(w, r, parts[1:], body)
	case parts[0] == "jd" && len(parts) == 2 && parts[1] == "analyze" && r.Method == http.MethodPost:
		a := analysisFor(s.nextID("jd"), body)
		s.analyses[a["id"].(string)] = a
		writeJSON(w, http.StatusOK, a)
	case parts[0] == "jd" && len(parts) == 2 && r.Method == http.MethodGet:
		a, ok := s.analyses[parts[1]]
		if !ok {
			http.Error(w, `{"detail":"JD not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, a)
	case parts[0] == "resumes":
		s.serveResumes(w, r, parts[1:], body)
	default:
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	}
}

func (s *Server) serveUsers(w http.ResponseWriter, r *http.Request, parts []string, body map[string]any) {
	switch {
	case len(parts) == 1 && parts[0] == "login-or-register" && r.Method == http.MethodPost:
		email, _ := body["email"].(string)
		for _, u := range s.users {
			if u["email"] == email {
				if u["password"] != body["password"] {
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = io.WriteString(w, `{"detail":"Invalid password"}`)
					return
				}
				writeJSON(w, http.StatusOK, publicUser(u))
				return
			}
		}
		u := map[string]any{
			"id":       s.nextID("u"),
			"username": strings.Split(email, "@")[0],
			"email":    email,
			"password": body["password"],
		}
		s.users[u["id"].(string)] = u
		writeJSON(w, http.StatusOK, publicUser(u))
	case len(parts) == 1 && r.Method == http.MethodGet:
		u, ok := s.users[parts[0]]
		if !ok {
			http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, publicUser(u))
	case len(parts) == 1 && r.Method == http.MethodDelete:
		delete(s.users, parts[0])
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	}
}

func publicUser(u map[string]any) map[string]any {
	return map[string]any{"id": u["id"], "username": u["username"], "email": u["email"]}
}

func (s *Server) serveProfiles(w http.ResponseWriter, r *http.Request, parts []string, body map[string]any) {
	switch {
	case len(parts) == 2 && parts[0] == "by-user" && r.Method == http.MethodGet:
		id, ok := s.byUser[parts[1]]
		if !ok {
			http.Error(w, `{"detail":"Profile not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, s.profiles[id])
	case len(parts) == 1 && r.Method == http.MethodPost:
		if _, ok := s.byUser[parts[0]]; ok {
			http.Error(w, `{"detail":"Profile already exists"}`, http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, s.createProfile(parts[0]))
	case len(parts) == 1 && r.Method == http.MethodGet:
		p, ok := s.profiles[parts[0]]
		if !ok {
			http.Error(w, `{"detail":"Profile not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		p, ok := s.profiles[parts[0]]
		if !ok {
			http.Error(w, `{"detail":"Profile not found"}`, http.StatusNotFound)
			return
		}
		delete(s.byUser, p["user_id"].(string))
		delete(s.profiles, parts[0])
		w.WriteHeader(http.StatusNoContent)
	case len(parts) == 2 && parts[1] == "personal-info" && r.Method == http.MethodPut:
		p, ok := s.profiles[parts[0]]
		if !ok {
			http.Error(w, `{"detail":"Profile not found"}`, http.StatusNotFound)
			return
		}
		info := map[string]any{"id": s.nextID("pi")}
		if prev, ok := p["personal_info"].(map[string]any); ok {
			info["id"] = prev["id"]
		}
		for k, v := range body {
			info[k] = v
		}
		p["personal_info"] = info
		writeJSON(w, http.StatusOK, info)
	case len(parts) == 2 && r.Method == http.MethodGet:
		field, ok := collections[parts[1]]
		p, found := s.profiles[parts[0]]
		if !ok || !found {
			http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p[field])
	case len(parts) == 2 && r.Method == http.MethodPost:
		field, ok := collections[parts[1]]
		p, found := s.profiles[parts[0]]
		if !ok || !found {
			http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
			return
		}
		item := map[string]any{"id": s.nextID(parts[1])}
		for k, v := range body {
			item[k] = v
		}
		if bullets, ok := item["bullets"].([]any); ok {
			for _, b := range bullets {
				if bm, ok := b.(map[string]any); ok {
					bm["id"] = s.nextID("b")
				}
			}
		}
		p[field] = append(p[field].([]any), item)
		writeJSON(w, http.StatusCreated, item)
	case len(parts) == 2 && r.Method == http.MethodDelete:
		field, ok := collections[parts[0]]
		if !ok {
			http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
			return
		}
		for _, p := range s.profiles {
			items := p[field].([]any)
			for i, it := range items {
				if it.(map[string]any)["id"] == parts[1] {
					p[field] = append(items[:i:i], items[i+1:]...)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
		}
		http.Error(w, `{"detail":"Item not found"}`, http.StatusNotFound)
	default:
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	}
}

func (s *Server) serveResumes(w http.ResponseWriter, r *http.Request, parts []string, body map[string]any) {
	switch {
	case len(parts) == 1 && parts[0] == "generate" && r.Method == http.MethodPost:
		profileID, _ := body["profile_id"].(string)
		if _, ok := s.profiles[profileID]; !ok {
			http.Error(w, `{"detail":"Profile not found"}`, http.StatusNotFound)
			return
		}
		id := s.nextID("r")
		jd := analysisFor(s.nextID("jd"), map[string]any{"raw_text": body["jd_text"]})
		structured := jd["structured_data"].(map[string]any)
		version := 1
		for _, res := range s.resumes {
			if res["profile_id"] == profileID {
				version++
			}
		}
		s.resumes = append(s.resumes, map[string]any{
			"id":         id,
			"profile_id": profileID,
			"jd_id":      jd["id"],
			"job_title":  structured["role_title"],
			"version":    version,
			"file_path":  "generated/" + id + ".pdf",
			"created_at": "2025-01-02T03:04:05",
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"resume_id":        id,
			"job_title":        structured["role_title"],
			"version":          version,
			"pdf_path":         "generated/" + id + ".pdf",
			"docx_path":        "generated/" + id + ".docx",
			"jd_analysis":      structured,
			"skill_confidence": map[string]any{"Go": "strong", "Kubernetes": "inferred"},
			"keyword_coverage": map[string]any{"backend": true, "grpc": false},
		})
	case len(parts) == 0 && r.Method == http.MethodGet:
		profileID := r.URL.Query().Get("profile_id")
		out := []any{}
		for _, res := range s.resumes {
			if profileID == "" || res["profile_id"] == profileID {
				out = append(out, res)
			}
		}
		if len(out) == 0 {
			http.Error(w, `{"detail":"No resumes found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, out)
	case len(parts) == 1 && r.Method == http.MethodGet:
		for _, res := range s.resumes {
			if res["id"] == parts[0] {
				writeJSON(w, http.StatusOK, res)
				return
			}
		}
		http.Error(w, `{"detail":"Resume not found"}`, http.StatusNotFound)
	default:
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
	}
}

func analysisFor(id string, body map[string]any) map[string]any {
	text, _ := body["raw_text"].(string)
	return map[string]any{
		"id": id,
		"structured_data": map[string]any{
			"role_title":          firstLine(text),
			"experience_level":    "mid",
			"role_category":       "engineering",
			"must_have_skills":    []any{"Go"},
			"nice_to_have_skills": []any{"Kubernetes"},
			"keywords":            []any{"backend"},
		},
		"created_at": "2025-01-02T03:04:05",
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
