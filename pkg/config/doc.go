/*
Package config loads reserialize run options from a file.

The format is chosen by extension:

	.json        encoding/json, unknown fields rejected
	.yaml .yml   gopkg.in/yaml.v3, unknown fields rejected
	.hcl         hashicorp/hcl/v2, with an env object for ${env.NAME}

🔍 Example (HCL):

	input       = "${env.HOME}/backups/prod.sql"
	output      = "${env.HOME}/backups/staging.sql"
	find        = "https://www\\.example\\.com"
	replace     = "https://staging.example.com"
	verbose     = true
	ignore_case = false
	loose       = false

Flags given on the command line take precedence over the file.
*/
package config
