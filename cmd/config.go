package cmd

// Config carries everything the composition root needs to wire the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Earning formula parameters. EarningPercentage is a fraction of the
	// order total (0.05 for 5%).
	EarningBaseFee    float64
	EarningPercentage float64
}
