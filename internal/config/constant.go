package config

var DEFAULT_CONFIG_YAML = `
# reportcrond Configuration File
# Environment: development, staging, production
# reportcrond.yaml
app_name: "reportcron"
environment: "production"
log_level: "info"

runner:
  mode: "host"    # host or docker
  # interpreter: "/usr/bin/python3.11"   # overrides runtime lookup in host mode
  docker:
    socket_path: ""      # empty uses the platform default
    pull_timeout: 5m

jobs:
  - name: "morning-report"
    schedule: "30 3 * * *"    # 03:30 UTC, daily
    script: "MorningReport.py"
    runtime: "3.11"
    requirements: "requirements.txt"
    work_dir: "/opt/reportcron/morning-report"
    secret:
      name: "GEMINI_API_KEY"        # variable name in the script's environment
      from_env: "GEMINI_API_KEY"    # read from the daemon's environment

shutdown:
  timeout: 60s

logger:
  level: "info"
  format: "json"  # or "text"
  output: "file"  # stdout, stderr, file, null
  file_path: "/var/log/reportcrond.log"
  timestamp_format: "2006-01-02T15:04:05.000Z"
  show_caller: false
  colors: false   # No colors in production logs
`
