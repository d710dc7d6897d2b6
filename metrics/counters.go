package metrics

import vmmetrics "github.com/VictoriaMetrics/metrics"

// Registration funnel counters, incremented by the HTTP handlers.
var (
	RegistrationsCreated = vmmetrics.NewCounter("registrations_created_total")
	RegistrationsDeduped = vmmetrics.NewCounter("registrations_deduplicated_total")
	StageOneCompleted    = vmmetrics.NewCounter("registrations_stage_one_completed_total")
	StatusUpdates        = vmmetrics.NewCounter("registrations_status_updates_total")
	MailSendErrors       = vmmetrics.NewCounter("notification_mail_errors_total")
	AuthFailures         = vmmetrics.NewCounter("admin_auth_failures_total")
)
