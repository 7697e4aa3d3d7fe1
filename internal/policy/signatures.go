package policy

import "sort"

// Signatures lists the identifier fragments the classifier recognizes.
// Packages and keywords are matched case-insensitively; activities,
// dangerous packages and browsers are matched as-is.
type Signatures struct {
	AdKeywords          []string
	AdPackages          []string
	DangerousActivities []string
	DangerousPackages   []string
	Browsers            []string
}

// DefaultSignatures returns the built-in ad SDK, installer and browser lists.
func DefaultSignatures() Signatures {
	return Signatures{
		AdKeywords: []string{
			"adactivity",
			"admob",
			"google.android.gms.ads",
			"gms.ads",
			"googleads",
			"applovin",
			"max",
			"unityads",
			"ironsource",
			"supersonic",
			"vungle",
			"chartboost",
			"adcolony",
			"mintegral",
			"bytedance",
			"pangle",
			"facebook.ads",
			"audience",
			"moloco",
		},
		AdPackages: []string{
			"com.google.android.gms",
			"com.google.android.gms.ads",
			"com.applovin",
			"com.applovin.sdk",
			"com.unity3d.ads",
			"com.ironsource",
			"com.ironsource.sdk",
			"com.vungle",
			"com.chartboost",
			"com.adcolony",
			"com.mintegral.msdk",
			"com.bytedance.sdk",
			"com.bytedance.sdk.openadsdk",
			"com.pangle",
			"com.facebook.ads",
			"com.moloco",
		},
		// Play Store and installer flows opened by ad click-throughs
		DangerousActivities: []string{
			"com.android.vending/com.google.android.finsky.activities.MainActivity",
			"com.android.vending/com.android.vending.AssetBrowserActivity",
			"com.google.android.packageinstaller/com.android.packageinstaller.PackageInstallerActivity",
			"com.android.packageinstaller/com.android.packageinstaller.PackageInstallerActivity",
			"com.google.android.packageinstaller/com.android.packageinstaller.InstallStart",
			"com.android.packageinstaller/com.android.packageinstaller.InstallStart",
		},
		DangerousPackages: []string{
			"com.android.vending",
			"com.google.android.packageinstaller",
			"com.android.packageinstaller",
		},
		// Browsers and custom tabs that can reopen sticky ads
		Browsers: []string{
			"com.android.chrome",
			"com.chrome.beta",
			"com.chrome.dev",
			"com.brave.browser",
			"org.mozilla.firefox",
			"org.mozilla.firefox_beta",
			"com.microsoft.emmx",
			"com.opera.browser",
			"com.opera.mini.native",
			"com.duckduckgo.mobile.android",
			"com.vivaldi.browser",
		},
	}
}

// Sorted returns a copy with every list sorted, for display.
func (s Signatures) Sorted() Signatures {
	return Signatures{
		AdKeywords:          sortedCopy(s.AdKeywords),
		AdPackages:          sortedCopy(s.AdPackages),
		DangerousActivities: sortedCopy(s.DangerousActivities),
		DangerousPackages:   sortedCopy(s.DangerousPackages),
		Browsers:            sortedCopy(s.Browsers),
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
