package harmonics

import "math"

// legendreSet holds the fully normalized associated Legendre functions
// P_nm(sin phi) and their first derivative with respect to phi, for
// 0 <= m <= n <= nmax, evaluated by the standard three-term recurrence
// (e.g. Holmes & Featherstone 2002).
type legendreSet struct {
	p    [][]float64
	dp   [][]float64 // dP_nm/dphi
	nmax int
}

func newLegendreSet(nmax int, sinPhi, cosPhi float64) *legendreSet {
	p := make([][]float64, nmax+1)
	dp := make([][]float64, nmax+1)
	for n := 0; n <= nmax; n++ {
		p[n] = make([]float64, n+1)
		dp[n] = make([]float64, n+1)
	}
	p[0][0] = 1
	dp[0][0] = 0

	for m := 0; m <= nmax; m++ {
		if m > 0 {
			// Sectoral: P_mm = sqrt((2m+1)/(2m)) * cosPhi * P_{m-1,m-1} for
			// m >= 2, and P_11 = sqrt(3) * cosPhi (the m = 0 -> 1 step carries
			// the extra factor 2 of the full normalization).
			f := math.Sqrt(float64(2*m+1) / float64(2*m))
			if m == 1 {
				f = math.Sqrt(3)
			}
			p[m][m] = f * cosPhi * p[m-1][m-1]
			dp[m][m] = f * (cosPhi*dp[m-1][m-1] - sinPhi*p[m-1][m-1])
		}
		if m+1 <= nmax {
			// P_{m+1,m} = sqrt(2m+3) * sinPhi * P_mm
			p[m+1][m] = math.Sqrt(float64(2*m+3)) * sinPhi * p[m][m]
			dp[m+1][m] = math.Sqrt(float64(2*m+3)) * (cosPhi*p[m][m] + sinPhi*dp[m][m])
		}
		for n := m + 2; n <= nmax; n++ {
			a := math.Sqrt(float64((2*n-1)*(2*n+1)) / float64((n-m)*(n+m)))
			b := math.Sqrt(float64((2*n+1)*(n+m-1)*(n-m-1)) / float64((2*n-3)*(n-m)*(n+m)))
			p[n][m] = a*sinPhi*p[n-1][m] - b*p[n-2][m]
			dp[n][m] = a*(cosPhi*p[n-1][m]+sinPhi*dp[n-1][m]) - b*dp[n-2][m]
		}
	}

	return &legendreSet{p: p, dp: dp, nmax: nmax}
}

func (l *legendreSet) P(n, m int) float64  { return l.p[n][m] }
func (l *legendreSet) DP(n, m int) float64 { return l.dp[n][m] }
