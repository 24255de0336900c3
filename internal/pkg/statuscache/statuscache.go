package statuscache

import (
	"fmt"
	"time"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/internal/pkg/cache"
)

// Cache key formats for budget status lookups
const (
	BudgetStatusKeyFormat          = "budget:status:%s"           // Format: budget:status:<public_id>
	BudgetStatusTimestampKeyFormat = "budget:status:timestamp:%s" // Format: budget:status:timestamp:<public_id>
)

// The status TTL matches the confirmation token lifetime so a stale entry
// never outlives the link that references it.
const statusTTL = 24 * time.Hour

// SetBudgetStatus records the budget's current status in the cache
func SetBudgetStatus(publicID string, status models.BudgetStatus) error {
	key := fmt.Sprintf(BudgetStatusKeyFormat, publicID)
	SetBudgetStatusTimestamp(publicID, time.Now())
	return cache.Set(key, string(status), statusTTL)
}

// SetBudgetStatusTimestamp sets the timestamp when the status was cached
func SetBudgetStatusTimestamp(publicID string, timestamp time.Time) error {
	cacheKey := fmt.Sprintf(BudgetStatusTimestampKeyFormat, publicID)
	return cache.Set(cacheKey, timestamp.Format(time.RFC3339), statusTTL)
}

// GetBudgetStatus retrieves the cached status of a budget
func GetBudgetStatus(publicID string) (models.BudgetStatus, error) {
	key := fmt.Sprintf(BudgetStatusKeyFormat, publicID)
	val, err := cache.Get(key)
	if err != nil {
		return "", err
	}
	return models.BudgetStatus(val), nil
}
