// Package service provides the business logic of the finance tracker.
// It is organized into sub-packages per concern:
// - auth: registration, login and token handling
// - user: profile reads and updates
// - transaction: income and expense records, bulk import
// - budget: monthly category budgets and recommendations
// - goal: savings goals
// - insight: dashboard, trends, generated insights and predictions
//
// Import the specific sub-package:
//
//	import "github.com/amirasaad/finhealth/pkg/service/transaction"
package service

import (
	_ "github.com/amirasaad/finhealth/pkg/service/auth"
	_ "github.com/amirasaad/finhealth/pkg/service/budget"
	_ "github.com/amirasaad/finhealth/pkg/service/goal"
	_ "github.com/amirasaad/finhealth/pkg/service/insight"
	_ "github.com/amirasaad/finhealth/pkg/service/transaction"
	_ "github.com/amirasaad/finhealth/pkg/service/user"
)
