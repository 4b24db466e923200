// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagDrop          = "drop"           // Drop instead of rebuild
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagInStock       = "in-stock"       // Only products with stock > 0
	FlagIncludeHidden = "include-hidden" // Include hidden files/directories
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagNamesOnly     = "names-only"     // Output product names only
	FlagRaw           = "raw"            // Raw output without formatting

	// String flags

	FlagAddr        = "addr"        // Listen address
	FlagDescription = "description" // Product description
	FlagMaxPrice    = "max-price"   // Upper price bound
	FlagMinPrice    = "min-price"   // Lower price bound
	FlagName        = "name"        // Product name
	FlagPrice       = "price"       // Product price
	FlagSort        = "sort"        // Sort key

	// Integer flags

	FlagCount     = "count"     // Number of items to generate
	FlagLimit     = "limit"     // Limit number of results
	FlagOffset    = "offset"    // Skip this many results
	FlagSeed      = "seed"      // Random seed
	FlagStock     = "stock"     // Units in stock
	FlagThreshold = "threshold" // Low-stock threshold
)
