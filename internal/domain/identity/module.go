package identity

// Module names one screen of the staff console. Portal roles (Client,
// Employee) never see the module switcher at all.
type Module string

const (
	ModuleDashboard     Module = "Dashboard"
	ModuleInvoices      Module = "Invoices"
	ModulePayments      Module = "Payments"
	ModuleClients       Module = "Clients"
	ModuleBranches      Module = "Branches"
	ModuleAccounts      Module = "Accounts"
	ModuleSettings      Module = "Settings"
	ModuleScanner       Module = "Scanner"
	ModuleNotifications Module = "Notifications"
	ModulePayroll       Module = "Payroll"
)

// AllModules lists every staff console module in display order.
func AllModules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleInvoices,
		ModulePayments,
		ModuleClients,
		ModuleBranches,
		ModuleAccounts,
		ModuleSettings,
		ModuleScanner,
		ModuleNotifications,
		ModulePayroll,
	}
}
