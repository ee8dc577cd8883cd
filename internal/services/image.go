package services

import "github.com/nguyenchibao12/job-backend/pkg/imageutil"

// normalizeImage is a seam for tests; production code always resolves to
// imageutil.NormalizeJPEG.
var normalizeImage = imageutil.NormalizeJPEG
