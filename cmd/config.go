package cmd

// Config carries the environment-driven settings for the back office.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	// AutoCreateCronSpec and MonitoringCronSpec are six-field cron
	// expressions controlling sweep frequency.
	AutoCreateCronSpec string
	MonitoringCronSpec string

	// SystemUserID is stamped on changes made by background sweeps and on
	// requests that name no acting user.
	SystemUserID int64
}
