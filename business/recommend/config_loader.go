package recommend

import "context"

// loadConfig reads the surface config from the repo, falling back to the
// service defaults for the surface as a whole and per missing field.
func (s *Service) loadConfig(ctx context.Context, surface string) Config {
	cfg := s.defaultCfg

	if s.cfgRepo == nil {
		return cfg
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, surface)
	if err != nil || !ok {
		return cfg
	}

	if dbCfg.WindowDays > 0 {
		cfg.WindowDays = dbCfg.WindowDays
	}
	if dbCfg.AnchorCount > 0 {
		cfg.AnchorCount = dbCfg.AnchorCount
	}
	if dbCfg.PanelSize > 0 {
		cfg.PanelSize = dbCfg.PanelSize
	}
	if dbCfg.TauDays > 0 {
		cfg.TauDays = dbCfg.TauDays
	}
	if dbCfg.ExcludeRecent > 0 {
		cfg.ExcludeRecent = dbCfg.ExcludeRecent
	}

	// scoring weights only override as a complete set
	if dbCfg.WSimilarity > 0 || dbCfg.WValue > 0 || dbCfg.WNovelty > 0 {
		cfg.WSimilarity = dbCfg.WSimilarity
		cfg.WValue = dbCfg.WValue
		cfg.WNovelty = dbCfg.WNovelty
	}
	if dbCfg.WAnchorFreq > 0 || dbCfg.WAnchorSpend > 0 {
		cfg.WAnchorFreq = dbCfg.WAnchorFreq
		cfg.WAnchorSpend = dbCfg.WAnchorSpend
	}

	return cfg
}
