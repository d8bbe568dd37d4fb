package handlers

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moneymaze/moneymaze/internal/models"
)

func TestSalaryUpsertLatestValueWins(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada", "ada@example.com", "pw")

	rec, c := env.doJSON(http.MethodPost, "/api/salary", map[string]interface{}{"salary": 4000})
	asUser(c, userID)
	require.NoError(t, env.Salaries.Upsert(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSON(http.MethodPost, "/api/salary", map[string]interface{}{"salary": 4500})
	asUser(c, userID)
	require.NoError(t, env.Salaries.Upsert(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var salaries []models.Salary
	require.NoError(t, env.DB.Where("user_id = ?", userID).Find(&salaries).Error)
	require.Len(t, salaries, 1, "no history rows")
	require.True(t, salaries[0].Amount.Equal(decimal.NewFromInt(4500)))
}

func TestSalaryGet(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada", "ada@example.com", "pw")

	rec, c := env.doJSON(http.MethodGet, "/api/salary", nil)
	asUser(c, userID)
	require.NoError(t, env.Salaries.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, decodeMap(t, rec)["salary"], "no salary set yet")

	recUp, cUp := env.doJSON(http.MethodPost, "/api/salary", map[string]interface{}{"salary": 4000})
	asUser(cUp, userID)
	require.NoError(t, env.Salaries.Upsert(cUp))
	require.Equal(t, http.StatusOK, recUp.Code)

	rec, c = env.doJSON(http.MethodGet, "/api/salary", nil)
	asUser(c, userID)
	require.NoError(t, env.Salaries.Get(c))
	require.NotNil(t, decodeMap(t, rec)["salary"])
}

func TestSalaryValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser(t, "ada", "ada@example.com", "pw")

	rec, c := env.doJSON(http.MethodPost, "/api/salary", map[string]interface{}{"salary": -1})
	asUser(c, userID)
	require.NoError(t, env.Salaries.Upsert(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
