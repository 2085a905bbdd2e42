package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Publish.validate(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (s *ServerConfig) validate() error {
	if s.WriteRateLimit <= 0 {
		return fmt.Errorf("write_rate_limit must be > 0 (got %d)", s.WriteRateLimit)
	}
	return nil
}

func (p *PublishConfig) validate() error {
	if p.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be > 0 (got %d)", p.MaxBatchSize)
	}
	if p.ScanLimit <= 0 {
		return fmt.Errorf("scan_limit must be > 0 (got %d)", p.ScanLimit)
	}
	if p.CurrencySymbol == "" {
		return fmt.Errorf("currency_symbol must not be empty")
	}
	if p.AuditHistoryLimit <= 0 {
		return fmt.Errorf("audit_history_limit must be > 0 (got %d)", p.AuditHistoryLimit)
	}
	return nil
}
