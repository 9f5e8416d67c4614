package patch

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"marketplace-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignmentRe = regexp.MustCompile(`([a-z_]+) = \$(\d+)`)

// boundValues maps each column of the rendered statement to the argument its
// placeholder points at.
func boundValues(t *testing.T, query string, args []any) map[string]any {
	t.Helper()
	out := map[string]any{}
	for _, m := range assignmentRe.FindAllStringSubmatch(query, -1) {
		idx, err := strconv.Atoi(m[2])
		require.NoError(t, err)
		require.LessOrEqual(t, idx, len(args), query)
		out[m[1]] = args[idx-1]
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestBuild_EveryUserFieldSubset(t *testing.T) {
	columns := []string{"name", "surname", "email", "password", "description"}

	for mask := 1; mask < 1<<len(columns); mask++ {
		t.Run(fmt.Sprintf("mask_%02d", mask), func(t *testing.T) {
			set := New()
			want := map[string]any{}
			for i, col := range columns {
				var v *string
				if mask&(1<<i) != 0 {
					v = strPtr("value-" + col)
					want[col] = *v
				}
				set.String(col, v)
			}
			want["id_user"] = int64(42)

			query, args, err := set.Build("users", "id_user", Eq("id_user", int64(42)))
			require.NoError(t, err)
			assert.Len(t, args, len(want))
			assert.Equal(t, want, boundValues(t, query, args))

			// contiguous placeholders $1..$N
			for i := 1; i <= len(args); i++ {
				assert.Contains(t, query, fmt.Sprintf("$%d", i))
			}
			assert.NotContains(t, query, fmt.Sprintf("$%d", len(args)+1))
		})
	}
}

func TestBuild_EveryProductFieldSubset(t *testing.T) {
	text := []string{"name", "description", "category", "model", "condition"}
	price, approved := 0.0, false

	for mask := 1; mask < 1<<(len(text)+2); mask++ {
		t.Run(fmt.Sprintf("mask_%03d", mask), func(t *testing.T) {
			set := New()
			want := map[string]any{}
			for i, col := range text {
				var v *string
				if mask&(1<<i) != 0 {
					v = strPtr("value-" + col)
					want[col] = *v
				}
				set.String(col, v)
			}
			var p *float64
			if mask&(1<<len(text)) != 0 {
				p = &price
				want["price"] = 0.0
			}
			set.Float("price", p)
			var a *bool
			if mask&(1<<(len(text)+1)) != 0 {
				a = &approved
				want["approved"] = false
			}
			set.Bool("approved", a)
			fields := len(want)
			want["id_product"] = int64(5)
			want["id_user"] = int64(2)

			query, args, err := set.Build("products", "id_product", Eq("id_product", int64(5)), Eq("id_user", int64(2)))
			require.NoError(t, err)
			require.Len(t, set.Columns(), fields)
			assert.Len(t, args, len(want))
			assert.Equal(t, want, boundValues(t, query, args))
			assert.Contains(t, query, fmt.Sprintf("WHERE id_product = $%d AND id_user = $%d", fields+1, fields+2))
			assert.NotContains(t, query, fmt.Sprintf("$%d", len(args)+1))
		})
	}
}

func TestBuild_EmptySetFails(t *testing.T) {
	empty := ""
	set := New().String("name", nil).String("surname", &empty).Float("price", nil).Bool("approved", nil)
	assert.True(t, set.Empty())

	_, _, err := set.Build("products", "", Eq("id_product", 1))
	assert.ErrorIs(t, err, models.ErrNoFieldsProvided)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestBuild_ZeroAndFalseArePresent(t *testing.T) {
	price := 0.0
	approved := false
	set := New().Float("price", &price).Bool("approved", &approved)

	query, args, err := set.Build("products", "id_product", Eq("id_product", int64(5)), Eq("id_user", int64(2)))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE products SET price = $1, approved = $2 WHERE id_product = $3 AND id_user = $4 RETURNING id_product", query)
	assert.Equal(t, []any{0.0, false, int64(5), int64(2)}, args)
	assert.Equal(t, []string{"price", "approved"}, set.Columns())
}

func TestBuild_MixedProductFields(t *testing.T) {
	price := 12.5
	yes := true
	set := New().
		String("name", strPtr("Lamp")).
		String("description", nil).
		String("category", strPtr("home")).
		Float("price", &price).
		Bool("approved", &yes)

	query, args, err := set.Build("products", "", Eq("id_product", int64(1)))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":       "Lamp",
		"category":   "home",
		"price":      12.5,
		"approved":   true,
		"id_product": int64(1),
	}, boundValues(t, query, args))
	assert.NotContains(t, query, "RETURNING")
}

func TestBuild_RejectsUnsafeIdentifiers(t *testing.T) {
	_, _, err := New().Value("name; DROP TABLE users", "x").Build("users", "", Eq("id_user", 1))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = New().Value("name", "x").Build("users u", "", Eq("id_user", 1))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = New().Value("name", "x").Build("users", "", Eq("1=1 OR id_user", 1))
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestBuild_RequiresCondition(t *testing.T) {
	_, _, err := New().Value("seller", true).Build("users", "")
	assert.ErrorIs(t, err, ErrNoCondition)
}
