package controllers

import (
	"sync"

	"github.com/orcahub/OrcaHub/app/repository"
	"github.com/orcahub/OrcaHub/internal/pkg/budgeting"
	"github.com/orcahub/OrcaHub/internal/pkg/database"
	"github.com/orcahub/OrcaHub/internal/pkg/lifecycle"
	"github.com/orcahub/OrcaHub/internal/pkg/mail"
)

var (
	setupOnce     sync.Once
	coordinator   *lifecycle.Coordinator
	budgetService *budgeting.BudgetService
)

func setupServices() {
	setupOnce.Do(func() {
		tx := repository.NewTxManager(database.GetDB())
		coordinator = lifecycle.NewCoordinator(tx, mail.NewBudgetNotifier(), 0)
		budgetService = budgeting.NewBudgetService(tx)
	})
}

func getCoordinator() *lifecycle.Coordinator {
	setupServices()
	return coordinator
}

func getBudgetService() *budgeting.BudgetService {
	setupServices()
	return budgetService
}
