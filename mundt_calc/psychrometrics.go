package mundt_calc

// **** 湿り空気の物性値 ****

import "math"

// 0 degree C in K
const kelvin_conv = 273.15

/*
Saturation pressure of water vapor over liquid water.

	Args:
		t: dry bulb temperature, degree C
	Returns:
		saturation pressure, Pa
	Notes:
		ASHRAE fundamentals correlation, valid above freezing which is the
		range the cooling-only Mundt model operates in.
*/
func psy_psat_fn_temp(t float64) float64 {
	const (
		c8  = -5800.2206
		c9  = 1.3914993
		c10 = -0.048640239
		c11 = 0.41764768e-4
		c12 = -0.14452093e-7
		c13 = 6.5459673
	)
	tk := t + kelvin_conv
	return math.Exp(c8/tk + c9 + c10*tk + c11*tk*tk + c12*tk*tk*tk + c13*math.Log(tk))
}

/*
Humidity ratio from dew point temperature and barometric pressure.

	Args:
		tdp: dew point temperature, degree C
		pb: barometric pressure, Pa
	Returns:
		humidity ratio, kg/kgDA
*/
func PsyWFnTdpPb(tdp float64, pb float64) float64 {
	p_dew := psy_psat_fn_temp(tdp)
	return 0.62198 * p_dew / (pb - p_dew)
}

/*
Enthalpy of moist air.

	Args:
		tdb: dry bulb temperature, degree C
		w: humidity ratio, kg/kgDA
	Returns:
		enthalpy, J/kg
*/
func psy_h_fn_tdb_w(tdb float64, w float64) float64 {
	return 1.00484e3*tdb + w*(2.50094e6+1.85895e3*tdb)
}

/*
Specific heat of moist air as the slope of the enthalpy line.

	Args:
		w: humidity ratio, kg/kgDA
		tdb: dry bulb temperature, degree C
	Returns:
		specific heat, J/kgK
*/
func PsyCpAirFnWTdb(w float64, tdb float64) float64 {
	h1 := psy_h_fn_tdb_w(tdb, w)
	h2 := psy_h_fn_tdb_w(tdb+0.1, w)
	return (h2 - h1) / 0.1
}

/*
Density of moist air from the ideal gas law.

	Args:
		pb: barometric pressure, Pa
		tdb: dry bulb temperature, degree C
		w: humidity ratio, kg/kgDA
	Returns:
		density, kg/m3
*/
func PsyRhoAirFnPbTdbW(pb float64, tdb float64, w float64) float64 {
	return pb / (287.0 * (tdb + kelvin_conv) * (1.0 + 1.6077687*math.Max(w, 1.0e-5)))
}
