package skin

import "github.com/kungfusheep/skin/logutil"

var logger = logutil.GetLogger("[skin] ")
