package lifecycle

import (
	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
)

// ServiceStatusUpdater persists the service status side of a transition
// plan inside the current transaction.
type ServiceStatusUpdater struct {
	services repository.ServiceRepository
}

// NewServiceStatusUpdater creates an updater over the given repository.
func NewServiceStatusUpdater(services repository.ServiceRepository) *ServiceStatusUpdater {
	return &ServiceStatusUpdater{services: services}
}

// Apply moves a service to the given status and persists it. It reports
// whether the row actually changed; moving to the current status is a
// no-op.
func (u *ServiceStatusUpdater) Apply(service *models.Service, status models.ServiceStatus) (bool, error) {
	if service.Status == status {
		return false, nil
	}

	service.Status = status
	if err := u.services.Update(service); err != nil {
		return false, err
	}
	return true, nil
}
