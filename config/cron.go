package config

import (
	"buildmart.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"tokenrefresh":   {Schedule: "@every 30m", Job: jobs.RefreshTokenJob},
	"lowstockreport": {Schedule: "0 7 * * *", Job: jobs.LowStockReportJob},
	// Add more jobs here
}
