package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/monocle-dev/taskboard/internal/models"
	"github.com/monocle-dev/taskboard/internal/testutil"
	"github.com/monocle-dev/taskboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberEnvelope struct {
	Message string               `json:"message"`
	Member  types.MemberResponse `json:"member"`
}

func TestMembers(t *testing.T) {
	h := newHarness(t)
	grace := testutil.CreateUser(t, h.conn, "Grace Hopper", "grace@example.com")

	rr := h.do("POST", "/api/projects", launchProject())
	requireStatus(t, rr, http.StatusCreated)
	projectID := decode[projectEnvelope](t, rr).Project.ID
	path := "/api/projects/" + projectID + "/members"

	rr = h.do("POST", path, map[string]any{"email": "Grace@Example.com"})
	requireStatus(t, rr, http.StatusCreated)

	added := decode[memberEnvelope](t, rr)
	assert.Equal(t, grace.ID, added.Member.UserID)
	assert.Equal(t, "Member", added.Member.Role)
	assert.Equal(t, "GH", added.Member.User.Initials)

	rr = h.do("POST", path, map[string]any{"user_id": grace.ID, "role": "Admin"})
	requireStatus(t, rr, http.StatusConflict)
	assert.Equal(t, int64(2), testutil.Count(t, h.conn, &models.ProjectMember{}, "project_id = ?", projectID))

	rr = h.do("GET", path, nil)
	assertOK(t, rr)
	members := decode[[]types.MemberResponse](t, rr)
	require.Len(t, members, 2)
	assert.Equal(t, "Owner", members[0].Role)

	rr = h.do("GET", "/api/projects/"+projectID, nil)
	assertOK(t, rr)
	assert.Equal(t, []string{"AL", "GH"}, decode[types.ProjectResponse](t, rr).Members)

	rr = h.do("PUT", path+"/"+added.Member.ID, map[string]any{"role": "Viewer"})
	assertOK(t, rr)
	assert.Equal(t, "Viewer", decode[memberEnvelope](t, rr).Member.Role)

	rr = h.do("PUT", path+"/"+added.Member.ID, map[string]any{"role": "Boss"})
	requireStatus(t, rr, http.StatusUnprocessableEntity)

	rr = h.do("DELETE", path+"/"+added.Member.ID, nil)
	assertOK(t, rr)
	assert.Equal(t, int64(1), testutil.Count(t, h.conn, &models.ProjectMember{}, "project_id = ?", projectID))

	rr = h.do("DELETE", path+"/"+added.Member.ID, nil)
	requireStatus(t, rr, http.StatusNotFound)
}

func TestAddMember_Errors(t *testing.T) {
	h := newHarness(t)
	project := testutil.CreateProject(t, h.conn, h.user, "Launch", models.ProjectPlanning)
	path := "/api/projects/" + project.ID + "/members"

	rr := h.do("POST", path, map[string]any{})
	requireStatus(t, rr, http.StatusUnprocessableEntity)
	assert.Equal(t,
		[]string{"The user id field is required when email is not present."},
		decode[validationBody](t, rr).Errors["user_id"])

	rr = h.do("POST", path, map[string]any{"email": "nobody@example.com"})
	requireStatus(t, rr, http.StatusUnprocessableEntity)
	assert.Contains(t, decode[validationBody](t, rr).Errors, "email")

	rr = h.do("POST", "/api/projects/"+uuid.NewString()+"/members", map[string]any{"user_id": h.user.ID})
	requireStatus(t, rr, http.StatusNotFound)
	assert.Equal(t, "Project not found", decode[messageBody](t, rr).Message)
}
