package config

// Config 服务核心配置
type Config struct {
	Mode     string `yaml:"mode"`
	HTTPPort int    `yaml:"http_port"`
	Database struct {
		Type     string `yaml:"type"`
		Path     string `yaml:"path"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
	} `yaml:"database"`
	Hub struct {
		BaseURL    string `yaml:"base_url"`
		Token      string `yaml:"token"`
		ScratchDir string `yaml:"scratch_dir"`
	} `yaml:"hub"`
	Cache struct {
		IdentityTTLSeconds int `yaml:"identity_ttl_seconds"`
	} `yaml:"cache"`
	Audit struct {
		Enabled  bool   `yaml:"enabled"`
		CronExpr string `yaml:"cron_expr"`
	} `yaml:"audit"`
}
