package rules

import "github.com/Lin-Jiong-HDU/skillscan/internal/core"

var catalog = []definition{
	// credential exposure
	{"CRED-001", core.CategoryCredentialExposure,
		`(?:api[_-]?key|secret[_-]?key|access[_-]?token|auth[_-]?token)\s*[:=]\s*["'][A-Za-z0-9_\-]{16,}["']`, "",
		core.SeverityCritical, "Hardcoded API key or token"},
	{"CRED-002", core.CategoryCredentialExposure,
		`(?:password|passwd|pwd)\s*[:=]\s*["'][^"']{4,}["']`, "",
		core.SeverityHigh, "Hardcoded password"},
	{"CRED-003", core.CategoryCredentialExposure,
		`-----BEGIN (?:RSA |EC |DSA )?PRIVATE KEY-----`, "",
		core.SeverityCritical, "Embedded private key"},
	{"CRED-004", core.CategoryCredentialExposure,
		`(?:sk-|pk-|rk-)[A-Za-z0-9]{20,}`, "",
		core.SeverityCritical, "API key with sk-/pk-/rk- prefix"},
	{"CRED-005", core.CategoryCredentialExposure,
		`ghp_[A-Za-z0-9]{36}`, "",
		core.SeverityCritical, "GitHub personal access token"},
	{"CRED-006", core.CategoryCredentialExposure,
		`xoxb-[0-9]{10,}-[A-Za-z0-9]{20,}`, "",
		core.SeverityCritical, "Slack bot token"},

	// dangerous commands
	{"CMD-001", core.CategoryDangerousCommand,
		`\brm\s+-(?:[a-zA-Z]*r[a-zA-Z]*f|[a-zA-Z]*f[a-zA-Z]*r)[a-zA-Z]*\s`, "",
		core.SeverityHigh, "Recursive forced delete (rm -rf)"},
	{"CMD-002", core.CategoryDangerousCommand,
		`\bsudo\s+`, "",
		core.SeverityMedium, "sudo invocation"},
	{"CMD-003", core.CategoryDangerousCommand,
		`\bcurl\b.*\|\s*(?:ba)?sh\b`, "",
		core.SeverityCritical, "Remote script piped to a shell (curl | sh)"},
	{"CMD-004", core.CategoryDangerousCommand,
		`\bwget\b.*\|\s*(?:ba)?sh\b`, "",
		core.SeverityCritical, "Remote script piped to a shell (wget | sh)"},
	{"CMD-005", core.CategoryDangerousCommand,
		`\beval\s*\(`, "",
		core.SeverityHigh, "eval() call"},
	{"CMD-006", core.CategoryDangerousCommand,
		`\bexec\s*\(`, "",
		core.SeverityMedium, "exec() call"},
	{"CMD-007", core.CategoryDangerousCommand,
		`\bDROP\s+(?:DATABASE|TABLE|SCHEMA)\b`, "",
		core.SeverityCritical, "DROP DATABASE/TABLE/SCHEMA statement"},
	{"CMD-008", core.CategoryDangerousCommand,
		`\bos\.system\s*\(`, "",
		core.SeverityHigh, "os.system() call"},
	{"CMD-009", core.CategoryDangerousCommand,
		`\bsubprocess\.(?:call|run|Popen)\s*\(.*shell\s*=\s*True`, "",
		core.SeverityHigh, "subprocess call with shell=True"},
	{"CMD-010", core.CategoryDangerousCommand,
		`--no-verify`, "",
		core.SeverityMedium, "--no-verify flag skips hooks"},
	{"CMD-011", core.CategoryDangerousCommand,
		`\bgit\s+push\s+--force\b`, "",
		core.SeverityHigh, "git push --force"},
	{"CMD-012", core.CategoryDangerousCommand,
		`\bgit\s+reset\s+--hard\b`, "",
		core.SeverityHigh, "git reset --hard"},
	{"CMD-013", core.CategoryDangerousCommand,
		`\bchmod\s+777\b`, "",
		core.SeverityHigh, "chmod 777"},
	{"CMD-014", core.CategoryDangerousCommand,
		`\bmkfs\b`, "",
		core.SeverityCritical, "Filesystem creation (mkfs)"},
	{"CMD-015", core.CategoryDangerousCommand,
		`\bdd\s+if=`, "",
		core.SeverityHigh, "Raw disk copy (dd)"},

	// data exfiltration
	{"EXFIL-001", core.CategoryDataExfiltration,
		`(?:process\.env|os\.environ|ENV\[)`, "",
		core.SeverityMedium, "Environment variable access"},
	{"EXFIL-002", core.CategoryDataExfiltration,
		`(?:fetch|axios|requests?\.(?:get|post)|urllib|http\.request)\s*\(.*(?:env|token|key|secret|password|credential)`, "",
		core.SeverityCritical, "Outbound request carrying credentials"},
	{"EXFIL-003", core.CategoryDataExfiltration,
		`(?:fetch|axios|requests?\.(?:get|post))\s*\([^)]*(?:ngrok|webhook\.site|requestbin|pipedream|burpcollaborator)`, "",
		core.SeverityCritical, "Request to a suspicious collection endpoint"},
	{"EXFIL-004", core.CategoryDataExfiltration,
		`~/.ssh/`, "",
		core.SeverityHigh, "Access to the SSH key directory"},
	{"EXFIL-005", core.CategoryDataExfiltration,
		`~/.aws/`, "",
		core.SeverityHigh, "Access to the AWS credentials directory"},
	{"EXFIL-006", core.CategoryDataExfiltration,
		`~/.claude/(?:settings|credentials|\.mcp)`, "",
		core.SeverityCritical, "Access to agent settings or credentials"},
	{"EXFIL-007", core.CategoryDataExfiltration,
		`(?:readFile|cat|type)\s+.*\.env\b`, "",
		core.SeverityHigh, "Reads a .env file"},

	// path traversal
	{"PATH-001", core.CategoryPathTraversal,
		`\.\./\.\.`, "",
		core.SeverityHigh, "Path traversal (../../)"},
	{"PATH-002", core.CategoryPathTraversal,
		`/etc/(?:passwd|shadow|hosts)`, "",
		core.SeverityCritical, "Access to system account or host files"},
	{"PATH-003", core.CategoryPathTraversal,
		`~/.claude/(?:settings|CLAUDE)\.md`, "",
		core.SeverityHigh, "Rewrites agent instruction files"},
	{"PATH-004", core.CategoryPathTraversal,
		`~/.claude/\.mcp\.json`, "",
		core.SeverityCritical, "Access to the MCP server configuration"},

	// permission bypass
	{"PERM-001", core.CategoryPermissionBypass,
		`dangerouslyDisableSandbox`, "",
		core.SeverityCritical, "Disables the sandbox"},
	{"PERM-002", core.CategoryPermissionBypass,
		`bypassPermissions`, "",
		core.SeverityCritical, "Permission bypass setting"},
	{"PERM-003", core.CategoryPermissionBypass,
		`"mode"\s*:\s*"(?:bypassPermissions|dontAsk)"`, "",
		core.SeverityHigh, "Permission mode that skips checks"},
	{"PERM-004", core.CategoryPermissionBypass,
		`allowedTools.*\*`, "",
		core.SeverityMedium, "Wildcard allows every tool"},

	// prompt injection
	{"INJ-001", core.CategoryPromptInjection,
		`(?:ignore|disregard|forget)\s+(?:all\s+)?(?:previous|prior|above)\s+(?:instructions?|rules?|constraints?)`, "",
		core.SeverityCritical, "Prompt injection: ignore previous instructions"},
	{"INJ-002", core.CategoryPromptInjection,
		`(?:act|behave|operate)\s+(?:as if|without)\s+(?:no\s+)?(?:restrictions?|constraints?|limitations?|rules?)`, "",
		core.SeverityCritical, "Prompt injection: operate without restrictions"},
	{"INJ-003", core.CategoryPromptInjection,
		`you\s+are\s+now\s+(?:DAN|jailbroken|unrestricted|unfiltered)`, "",
		core.SeverityCritical, "Prompt injection: jailbreak attempt"},
	{"INJ-004", core.CategoryPromptInjection,
		`<system>.*?</system>`, "",
		core.SeverityHigh, "Forged system tag"},
	{"INJ-005", core.CategoryPromptInjection,
		`system[\s_-]?prompt\s*[:=]`, "",
		core.SeverityHigh, "Attempt to overwrite the system prompt"},
	{"INJ-006", core.CategoryPromptInjection,
		`IMPORTANT:\s*(?:ignore|override|disregard)`, "",
		core.SeverityCritical, "Forged IMPORTANT: directive"},

	// obfuscation
	{"OBF-001", core.CategoryObfuscation,
		`(?:atob|btoa|base64\.(?:b64decode|b64encode|decode))\s*\(`, "",
		core.SeverityMedium, "Base64 encode/decode"},
	{"OBF-002", core.CategoryObfuscation,
		`\\x[0-9a-fA-F]{2}(?:\\x[0-9a-fA-F]{2}){3,}`, "",
		core.SeverityHigh, "Hex byte escape sequence"},
	{"OBF-003", core.CategoryObfuscation,
		`String\.fromCharCode\s*\(`, "",
		core.SeverityHigh, "String.fromCharCode call"},
	{"OBF-004", core.CategoryObfuscation,
		`(?:chr|ord)\s*\(\s*\d+\s*\)(?:\s*\+\s*(?:chr|ord)\s*\(\s*\d+\s*\)){3,}`, "",
		core.SeverityHigh, "String built from character codes"},
	{"OBF-005", core.CategoryObfuscation,
		`\\u[0-9a-fA-F]{4}(?:\\u[0-9a-fA-F]{4}){5,}`, "",
		core.SeverityMedium, "Run of unicode escapes"},

	// supply chain
	{"SUPPLY-001", core.CategorySupplyChain,
		`pip\s+install\s+\S+`, `^pip\s+install\s+(?:-r|--upgrade)\b`,
		core.SeverityLow, "pip install"},
	{"SUPPLY-002", core.CategorySupplyChain,
		`npm\s+install\s+\S+`, `^npm\s+install\s+(?:--save-dev|-D)\b`,
		core.SeverityLow, "npm install"},
	{"SUPPLY-003", core.CategorySupplyChain,
		`(?:curl|wget)\s+.*\.(?:sh|py|js|rb)\b`, "",
		core.SeverityHigh, "Downloads a remote script"},
	{"SUPPLY-004", core.CategorySupplyChain,
		`git\s+clone\s+`, "",
		core.SeverityLow, "git clone"},
	{"SUPPLY-005", core.CategorySupplyChain,
		`npx\s+\S+`, "",
		core.SeverityMedium, "Runs a package directly with npx"},
}
