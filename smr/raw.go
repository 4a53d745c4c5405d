package smr

// Line of the SMR registration CSV, as written by the prepare command
type RawRecord struct {
	SiteName  string     `csv:"site_name"`
	DepthFrom float64    `csv:"depth_from"`
	DepthTo   float64    `csv:"depth_to"`
	P5        Percentile `csv:"p5"`
	P50       Percentile `csv:"p50"`
	P95       Percentile `csv:"p95"`
}

// Line of a per-site "credible interval" results file of the probabilistic inversion
type CIResult struct {
	P5  Percentile `csv:"p5"`
	P50 Percentile `csv:"p50"`
	P95 Percentile `csv:"p95"`
}

// Line of the header-less depths file shared by all sites
type Depth struct {
	From float64 `csv:"depth_from"`
}
