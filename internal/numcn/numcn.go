// Package numcn rewrites numeric tokens into Chinese text before the
// segmenter runs, so digits, dates, phone numbers, and the like flow through
// the normal pronunciation pipeline.
package numcn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var digits = [10]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

var units = [4]string{"", "十", "百", "千"}

// Grouping units for 4-digit sections; 兆 covers 10^12.
var bigUnits = [4]string{"", "万", "亿", "兆"}

// convertSection renders 0-9999. skipOne drops the leading 一 of 一千
// (used for the highest section of small numbers); useLiang renders 2 as 两
// in the thousand/hundred/leading-ten positions.
func convertSection(num int, skipOne, useLiang bool) string {
	if num == 0 {
		return ""
	}
	var sb strings.Builder
	needZero := false

	qian := num / 1000
	if qian > 0 {
		switch {
		case qian == 1 && !skipOne:
			sb.WriteString(digits[1])
		case qian == 2 && useLiang:
			sb.WriteString("两")
		case qian > 1:
			sb.WriteString(digits[qian])
		}
		sb.WriteString(units[3])
	}

	bai := (num % 1000) / 100
	if bai > 0 {
		if bai == 2 && useLiang && qian == 0 {
			sb.WriteString("两")
		} else {
			sb.WriteString(digits[bai])
		}
		sb.WriteString(units[2])
	} else if qian > 0 && num%100 > 0 {
		needZero = true
	}

	shi := (num % 100) / 10
	if shi > 0 {
		if needZero {
			sb.WriteString(digits[0])
			needZero = false
		}
		if shi == 1 && num < 20 && qian == 0 && bai == 0 {
			sb.WriteString(units[1]) // 10-19 read 十 not 一十
		} else {
			if shi == 2 && useLiang && qian == 0 && bai == 0 {
				sb.WriteString("两")
			} else {
				sb.WriteString(digits[shi])
			}
			sb.WriteString(units[1])
		}
	} else if (qian > 0 || bai > 0) && num%10 > 0 {
		needZero = true
	}

	ge := num % 10
	if ge > 0 {
		if needZero {
			sb.WriteString(digits[0])
		}
		sb.WriteString(digits[ge])
	}
	return sb.String()
}

// IntToChinese converts an integer using 万/亿 grouping.
func IntToChinese(num int64, useLiang bool) string {
	if num == 0 {
		return digits[0]
	}
	negative := num < 0
	if negative {
		num = -num
	}

	var sections [4]int
	count := 0
	for num > 0 && count < 4 {
		sections[count] = int(num % 10000)
		num /= 10000
		count++
	}

	var sb strings.Builder
	needZero := false
	for i := count - 1; i >= 0; i-- {
		if sections[i] == 0 {
			needZero = true
			continue
		}
		if needZero && sb.Len() > 0 {
			sb.WriteString(digits[0])
		}
		needZero = false
		skipOne := i == count-1 && sections[i] < 2000
		sb.WriteString(convertSection(sections[i], skipOne, useLiang))
		if i > 0 {
			sb.WriteString(bigUnits[i])
		}
	}

	if negative {
		return "负" + sb.String()
	}
	return sb.String()
}

// FloatToChinese converts a decimal: integer part grouped, fraction read
// digit-wise after 点, trailing zeros trimmed.
func FloatToChinese(text string, useLiang bool) (string, bool) {
	negative := strings.HasPrefix(text, "-")
	trimmed := strings.TrimPrefix(text, "-")
	intPart, fracPart, hasFrac := strings.Cut(trimmed, ".")
	if intPart == "" {
		intPart = "0"
	}
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return "", false
	}

	out := IntToChinese(n, useLiang)
	if hasFrac {
		fracPart = strings.TrimRight(fracPart, "0")
		if fracPart != "" {
			out += "点"
			for _, r := range fracPart {
				if r < '0' || r > '9' {
					return "", false
				}
				out += digits[r-'0']
			}
		}
	}
	if negative {
		out = "负" + out
	}
	return out, true
}

// DigitsToChinese reads a digit string one digit at a time (phone numbers,
// years, IDs).
func DigitsToChinese(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteString(digits[r-'0'])
		}
	}
	return sb.String()
}

var (
	reInteger  = regexp.MustCompile(`^[-+]?\d{1,18}$`)
	reDecimal  = regexp.MustCompile(`^[-+]?\d{1,18}\.\d+$`)
	rePercent  = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?%$`)
	reCurrency = regexp.MustCompile(`^[¥$]\d+(?:\.\d+)?$`)
	rePhone    = regexp.MustCompile(`^(?:\d{3,4}-)?\d{7,8}$|^1\d{10}$`)
	reDate     = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	reTime     = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	reIPv4     = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

	// Candidate spans inside running text, longest alternatives first.
	reNumericSpan = regexp.MustCompile(`(\d{1,3}\.){3}\d{1,3}|\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}:\d{2}(:\d{2})?|(\d{3,4}-)?\d{7,8}|1\d{10}|[¥$]\d+(\.\d+)?|[-+]?\d+(\.\d+)?%|[-+]?\d+(\.\d+)?`)
)

// ConvertToken rewrites one numeric token into Chinese reading text.
// Unrecognized formats report ok = false and leave the token for the
// segmenter to handle as-is.
func ConvertToken(s string) (string, bool) {
	switch {
	case reIPv4.MatchString(s):
		parts := reIPv4.FindStringSubmatch(s)
		for _, p := range parts[1:] {
			if v, _ := strconv.Atoi(p); v > 255 {
				return "", false
			}
		}
		segs := make([]string, 0, 4)
		for _, p := range parts[1:] {
			segs = append(segs, DigitsToChinese(p))
		}
		return strings.Join(segs, "点"), true

	case reDate.MatchString(s):
		parts := reDate.FindStringSubmatch(s)
		year := parts[1]
		month, _ := strconv.Atoi(parts[2])
		day, _ := strconv.Atoi(parts[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return "", false
		}
		return fmt.Sprintf("%s年%s月%s日",
			DigitsToChinese(year),
			IntToChinese(int64(month), false),
			IntToChinese(int64(day), false)), true

	case reTime.MatchString(s):
		parts := reTime.FindStringSubmatch(s)
		hour, _ := strconv.Atoi(parts[1])
		minute, _ := strconv.Atoi(parts[2])
		if hour > 23 || minute > 59 {
			return "", false
		}
		out := IntToChinese(int64(hour), true) + "点" + IntToChinese(int64(minute), false) + "分"
		if parts[3] != "" {
			second, _ := strconv.Atoi(parts[3])
			if second > 59 {
				return "", false
			}
			out += IntToChinese(int64(second), false) + "秒"
		}
		return out, true

	case rePhone.MatchString(s):
		return DigitsToChinese(s), true

	case rePercent.MatchString(s):
		body := strings.TrimSuffix(s, "%")
		converted, ok := FloatToChinese(strings.TrimPrefix(body, "+"), false)
		if !ok {
			return "", false
		}
		return "百分之" + converted, true

	case reCurrency.MatchString(s):
		unit := "元"
		body := strings.TrimPrefix(s, "¥")
		if strings.HasPrefix(s, "$") {
			unit = "美元"
			body = strings.TrimPrefix(s, "$")
		}
		converted, ok := FloatToChinese(body, true)
		if !ok {
			return "", false
		}
		return converted + unit, true

	case reDecimal.MatchString(s):
		return FloatToChinese(strings.TrimPrefix(s, "+"), false)

	case reInteger.MatchString(s):
		n, err := strconv.ParseInt(strings.TrimPrefix(s, "+"), 10, 64)
		if err != nil {
			return "", false
		}
		return IntToChinese(n, false), true
	}
	return "", false
}

// ReplaceAll rewrites every recognized numeric span of text into Chinese
// reading text, leaving everything else untouched.
func ReplaceAll(text string) string {
	return reNumericSpan.ReplaceAllStringFunc(text, func(span string) string {
		if converted, ok := ConvertToken(span); ok {
			return converted
		}
		return span
	})
}
