package shell

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTheme(t *testing.T) {
	theme, err := LoadTheme()
	require.NoError(t, err)

	assert.Equal(t, "#D4AF37", theme.Palette.Primary.Main)
	assert.Equal(t, "#2C1810", theme.Palette.Primary.ContrastText)
	assert.Equal(t, "#FFF8E1", theme.Palette.Background.Default)
	assert.Equal(t, "#D32F2F", theme.Palette.Error)
	assert.Equal(t, 700, theme.Typography.Headings["h1"].FontWeight)
	assert.Equal(t, `"Playfair Display", serif`, theme.Typography.Headings["h2"].FontFamily)
	assert.Equal(t, 12, theme.Shape.CardRadius)
}

func TestParseTheme_Invalid(t *testing.T) {
	_, err := ParseTheme([]byte("palette: ["))
	assert.Error(t, err)

	_, err = ParseTheme([]byte("shape: {card_radius: 4}"))
	assert.ErrorContains(t, err, "palette.primary.main")
}

func TestNavigation(t *testing.T) {
	nav := Navigation()
	require.Len(t, nav, 5)
	assert.Equal(t, Link{Label: "New Inspection", Path: "/new-inspection"}, nav[1])

	nav[0].Label = "changed"
	assert.Equal(t, "Home", Navigation()[0].Label)

	l, ok := Resolve("/regulator")
	assert.True(t, ok)
	assert.Equal(t, "Regulator View", l.Label)

	l, ok = Resolve("/nowhere")
	assert.False(t, ok)
	assert.Equal(t, NotFoundPath, l.Path)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	theme, err := LoadTheme()
	require.NoError(t, err)

	r := gin.New()
	NewHandler(theme).Register(r.Group("/api/v1"))
	r.NoRoute(NotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/navigation?path=/about", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var nav struct {
		Links []Link `json:"links"`
		Route Link   `json:"route"`
		Known bool   `json:"known"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nav))
	assert.Len(t, nav.Links, 5)
	assert.True(t, nav.Known)
	assert.Equal(t, "About", nav.Route.Label)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"button_radius":8`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "page not found")
}
