// Package sessiontest builds practice engines over in-memory stores for
// tests of the packages that drive them.
package sessiontest

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/store"
)

// Now is the fixed clock of engines built by NewEngine.
var Now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// NewEngine returns an engine for learner "ada" over the built-in catalogs
// and a private in-memory store. Modifiers run before the engine is built.
func NewEngine(t *testing.T, modify ...func(*session.Deps)) *session.Engine {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:sessiontest_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ex, err := catalog.DefaultExercises()
	if err != nil {
		t.Fatalf("exercises: %v", err)
	}
	tasks, err := catalog.DefaultTasks()
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}

	d := session.Deps{
		LearnerID: "ada",
		Store:     st,
		Exercises: ex,
		Tasks:     tasks,
		Retention: 30 * 24 * time.Hour,
		Now:       func() time.Time { return Now },
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}
	for _, m := range modify {
		m(&d)
	}
	return session.NewEngine(d)
}
